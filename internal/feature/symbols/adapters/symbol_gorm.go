package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tickertalk/internal/feature/symbols/domain/entity"
	"tickertalk/internal/feature/symbols/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのgorm実装です（sqlite / postgres）。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewGormSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewGormSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// Migrate は symbols テーブルを作成します。
func (r *symbolGorm) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&entity.Symbol{})
}

// SeedIfEmpty はテーブルが空の場合のみ symbols を投入します。投入した件数を返します。
func (r *symbolGorm) SeedIfEmpty(ctx context.Context, symbols []entity.Symbol) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Symbol{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 || len(symbols) == 0 {
		return 0, nil
	}

	rows := make([]entity.Symbol, len(symbols))
	copy(rows, symbols)
	for i := range rows {
		rows[i].ID = 0
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("seed symbols: %w", err)
	}
	return len(rows), nil
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("id ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

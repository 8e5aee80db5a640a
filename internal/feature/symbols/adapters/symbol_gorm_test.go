package adapters

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tickertalk/internal/feature/symbols/domain/entity"
)

// setupTestDB はテストごとに独立したインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", ":", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	repo := NewGormSymbolRepository(db)
	require.NoError(t, repo.Migrate(context.Background()), "failed to migrate table")

	return db
}

func TestNewGormSymbolRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewGormSymbolRepository(db)

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestSymbolGorm_SeedIfEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSymbolRepository(db)

	seed, err := ParseSymbols([]byte("- {name: Tesla, code: TSLA}\n- {name: Apple, code: AAPL}\n- {name: Wells Fargo, code: WFC}\n- {name: Wells Fargo & Company, code: WFC}\n"))
	require.NoError(t, err)

	n, err := repo.SeedIfEmpty(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// 2回目は既にデータがあるため投入しない
	n, err = repo.SeedIfEmpty(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, n)

	symbols, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, symbols, 4)
	assert.Equal(t, []string{"Tesla", "Apple", "Wells Fargo", "Wells Fargo & Company"},
		[]string{symbols[0].Name, symbols[1].Name, symbols[2].Name, symbols[3].Name})
}

func TestSymbolGorm_ListActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		setupFunc     func(t *testing.T, db *gorm.DB)
		expectedCodes []string
	}{
		{
			name: "success: returns active symbols sorted by sort_key",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				require.NoError(t, db.Create(&entity.Symbol{Name: "Amazon", Code: "AMZN", IsActive: true, SortKey: 2}).Error)
				require.NoError(t, db.Create(&entity.Symbol{Name: "Microsoft", Code: "MSFT", IsActive: true, SortKey: 1}).Error)
				require.NoError(t, db.Create(&entity.Symbol{Name: "Tesla", Code: "TSLA", IsActive: true, SortKey: 3}).Error)
			},
			expectedCodes: []string{"MSFT", "AMZN", "TSLA"},
		},
		{
			name: "success: excludes inactive symbols",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				apple := &entity.Symbol{Name: "Apple", Code: "AAPL", IsActive: true, SortKey: 1}
				require.NoError(t, db.Create(apple).Error)
				require.NoError(t, db.Create(&entity.Symbol{Name: "IBM", Code: "IBM", IsActive: true, SortKey: 2}).Error)
				// SQLiteでは default:true のため false は更新で設定する
				require.NoError(t, db.Model(apple).Update("is_active", false).Error)
			},
			expectedCodes: []string{"IBM"},
		},
		{
			name:          "success: empty table",
			setupFunc:     func(t *testing.T, db *gorm.DB) {},
			expectedCodes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			tt.setupFunc(t, db)
			repo := NewGormSymbolRepository(db)

			symbols, err := repo.ListActive(context.Background())
			require.NoError(t, err)

			codes := make([]string, 0, len(symbols))
			for _, s := range symbols {
				codes = append(codes, s.Code)
			}
			assert.Equal(t, tt.expectedCodes, codes)
		})
	}
}

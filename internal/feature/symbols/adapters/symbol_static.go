// Package adapters はsymbolsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tickertalk/internal/feature/symbols/domain/entity"
	"tickertalk/internal/feature/symbols/usecase"
)

//go:embed symbols.yaml
var defaultSymbolsYAML []byte

// symbolStatic はバイナリに埋め込まれたYAMLから銘柄を返すSymbolRepository実装です。
type symbolStatic struct {
	symbols []entity.Symbol
}

var _ usecase.SymbolRepository = (*symbolStatic)(nil)

// NewStaticSymbolRepository は埋め込みの銘柄一覧を使うリポジトリを生成します。
func NewStaticSymbolRepository() (*symbolStatic, error) {
	return NewStaticSymbolRepositoryFromYAML(defaultSymbolsYAML)
}

// NewStaticSymbolRepositoryFromYAML は name/code のリストを記述したYAMLからリポジトリを生成します。
func NewStaticSymbolRepositoryFromYAML(data []byte) (*symbolStatic, error) {
	symbols, err := ParseSymbols(data)
	if err != nil {
		return nil, err
	}
	return &symbolStatic{symbols: symbols}, nil
}

// ParseSymbols はYAMLを読み込み、記述順を SortKey に設定します。
func ParseSymbols(data []byte) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := yaml.Unmarshal(data, &symbols); err != nil {
		return nil, fmt.Errorf("parse symbols: %w", err)
	}
	for i := range symbols {
		if symbols[i].Name == "" || symbols[i].Code == "" {
			return nil, fmt.Errorf("parse symbols: entry %d requires name and code", i)
		}
		symbols[i].SortKey = i
		symbols[i].IsActive = true
	}
	return symbols, nil
}

// ListActive は記述順のすべての銘柄を返します。
func (r *symbolStatic) ListActive(_ context.Context) ([]entity.Symbol, error) {
	out := make([]entity.Symbol, len(r.symbols))
	copy(out, r.symbols)
	return out, nil
}

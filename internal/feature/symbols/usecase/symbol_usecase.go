// Package usecase implements the business logic for the symbol directory.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tickertalk/internal/feature/symbols/domain/entity"
)

// ErrSymbolNotFound is returned when a display name is not in the directory.
var ErrSymbolNotFound = errors.New("symbol not found")

// SymbolRepository abstracts where the directory entries come from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolUsecase serves the symbol directory. Entries are read from the repository once
// and never change afterwards, so it is safe for concurrent use.
type SymbolUsecase struct {
	symbols []entity.Symbol
	byName  map[string]entity.Symbol
}

// NewSymbolUsecase loads the directory from the repository, keeping the loaded order.
func NewSymbolUsecase(ctx context.Context, r SymbolRepository) (*SymbolUsecase, error) {
	symbols, err := r.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load symbol directory: %w", err)
	}
	byName := make(map[string]entity.Symbol, len(symbols))
	for _, s := range symbols {
		byName[normalize(s.Name)] = s
	}
	return &SymbolUsecase{symbols: symbols, byName: byName}, nil
}

// ListActiveSymbols returns the directory entries in load order.
func (u *SymbolUsecase) ListActiveSymbols(_ context.Context) ([]entity.Symbol, error) {
	out := make([]entity.Symbol, len(u.symbols))
	copy(out, u.symbols)
	return out, nil
}

// Resolve returns the entry for a display name. Matching ignores case and surrounding spaces.
func (u *SymbolUsecase) Resolve(name string) (entity.Symbol, error) {
	s, ok := u.byName[normalize(name)]
	if !ok {
		return entity.Symbol{}, fmt.Errorf("%w: %q", ErrSymbolNotFound, name)
	}
	return s, nil
}

// Echo returns the sentence shown under the selector for the chosen entry.
func Echo(s entity.Symbol) string {
	return fmt.Sprintf("The selected stock symbol for %s is %s", s.Name, s.Code)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

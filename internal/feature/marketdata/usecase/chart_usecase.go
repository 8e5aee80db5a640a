package usecase

import (
	"context"
	"errors"
	"fmt"

	"tickertalk/internal/feature/marketdata/domain/entity"
)

// ErrInvalidChartQuery はチャート取得パラメータが不正な場合に返されます。
var ErrInvalidChartQuery = errors.New("invalid chart query")

// ChartGateway はチャート取得に必要なゲートウェイ操作です。
type ChartGateway interface {
	Chart(ctx context.Context, q entity.ChartQuery) (entity.ChartData, error)
}

// chartUsecase はセレクタから直接チャートを取得するユースケースです。
type chartUsecase struct {
	gateway ChartGateway
}

// NewChartUsecase はchartUsecaseの新しいインスタンスを生成します。
func NewChartUsecase(gateway ChartGateway) *chartUsecase {
	return &chartUsecase{gateway: gateway}
}

// GetChart は空のパラメータをデフォルト値（US / 1d / 5m）で補完し、検証してからチャートを取得します。
func (u *chartUsecase) GetChart(ctx context.Context, q entity.ChartQuery) (entity.ChartQuery, []entity.ChartPoint, error) {
	q = q.WithDefaults()
	if err := q.Validate(); err != nil {
		return q, nil, fmt.Errorf("%w: %v", ErrInvalidChartQuery, err)
	}

	data, err := u.gateway.Chart(ctx, q)
	if err != nil {
		return q, nil, err
	}
	return q, data.Series(), nil
}

package dto

import (
	"tickertalk/internal/feature/marketdata/domain/entity"
	"tickertalk/internal/shared/figure"
)

// ChartResponse は GET /v1/stocks/:symbol/chart のレスポンスです。
type ChartResponse struct {
	Symbol   string              `json:"symbol"`
	Region   string              `json:"region"`
	Range    string              `json:"range"`
	Interval string              `json:"interval"`
	Points   []entity.ChartPoint `json:"points"`
	Figure   figure.Figure       `json:"figure"`
}

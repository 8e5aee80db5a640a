// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tickertalk/internal/feature/marketdata/domain/entity"
	"tickertalk/internal/feature/marketdata/transport/http/dto"
	"tickertalk/internal/feature/marketdata/usecase"
	"tickertalk/internal/shared/figure"
)

// ChartUsecase はチャート取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	GetChart(ctx context.Context, q entity.ChartQuery) (entity.ChartQuery, []entity.ChartPoint, error)
}

// ChartHandler はセレクタからの直接チャート取得を処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler はChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// GetChart は終値の系列とplotly.jsの図を返します。
//
// エンドポイント: GET /v1/stocks/:symbol/chart?region=US&range=1d&interval=5m
// 省略したクエリは US / 1d / 5m になります。
// 不正なクエリは400、データなしは404、外部API失敗は502を返します。
func (h *ChartHandler) GetChart(c *gin.Context) {
	q := entity.ChartQuery{
		Symbol:   strings.ToUpper(strings.TrimSpace(c.Param("symbol"))),
		Region:   c.Query("region"),
		Range:    c.Query("range"),
		Interval: c.Query("interval"),
	}

	q, points, err := h.uc.GetChart(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChartResponse{
		Symbol:   q.Symbol,
		Region:   q.Region,
		Range:    q.Range,
		Interval: q.Interval,
		Points:   points,
		Figure:   figure.CloseChart(q.Symbol, points),
	})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrInvalidChartQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fe, ok := entity.AsFetchError(err); ok {
		if fe.Kind == entity.KindNoData {
			c.JSON(http.StatusNotFound, fe)
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("chart fetch failed")
		c.JSON(http.StatusBadGateway, fe)
		return
	}
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("chart fetch failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

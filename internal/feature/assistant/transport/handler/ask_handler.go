// Package handler はassistantフィーチャーのHTTPハンドラー（JSON APIとHTMLページ）を提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tickertalk/internal/feature/assistant/catalog"
	"tickertalk/internal/feature/assistant/domain/entity"
	"tickertalk/internal/feature/assistant/transport/http/dto"
	"tickertalk/internal/feature/assistant/usecase"
)

// AssistantUsecase は質問を分類してデータを取得するユースケースのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AssistantUsecase interface {
	Ask(ctx context.Context, question string) (entity.Reply, error)
}

// AskHandler は質問APIを処理します。
type AskHandler struct {
	uc AssistantUsecase
}

// NewAskHandler はAskHandlerの新しいインスタンスを生成します。
func NewAskHandler(uc AssistantUsecase) *AskHandler {
	return &AskHandler{uc: uc}
}

// Ask は質問を1回分類し、選ばれたアクションの結果を返します。
//
// エンドポイント: POST /v1/ask
// ボディ: {"question": "Give me latest news for AAPL"}
//
// 空の質問は 204、分類や引数の失敗は 502 を返します。
// 外部データ取得の失敗は 200 のレスポンスの error フィールドに入ります。
func (h *AskHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	reply, err := h.uc.Ask(c.Request.Context(), req.Question)
	if err != nil {
		status, body := askErrorResponse(c.Request.Context(), err)
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, dto.FromReply(reply))
}

// askErrorResponse はユースケースのエラーをステータスコードとレスポンスに変換します。ページハンドラーと共用です。
func askErrorResponse(ctx context.Context, err error) (int, dto.ErrorResponse) {
	var (
		classifierErr *usecase.ClassifierError
		argErr        *catalog.ArgumentError
	)
	switch {
	case errors.Is(err, usecase.ErrBlankQuestion):
		return http.StatusNoContent, dto.ErrorResponse{}
	case errors.As(err, &classifierErr):
		return http.StatusBadGateway, dto.ErrorResponse{Error: "the language model could not be reached, please try again"}
	case errors.As(err, &argErr):
		return http.StatusBadGateway, dto.ErrorResponse{Error: argErr.Error(), Action: string(argErr.Action)}
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("ask failed")
		return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"}
	}
}

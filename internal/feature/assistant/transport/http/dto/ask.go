// Package dto はassistantフィーチャーのリクエスト・レスポンス型を定義します。
package dto

import (
	"tickertalk/internal/feature/assistant/domain/entity"
	"tickertalk/internal/shared/figure"
)

// AskRequest は POST /v1/ask のリクエストボディです。
// 空白のみの質問は 204 として無視されるため required にはしていません。
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse は POST /v1/ask のレスポンスボディです。
type AskResponse struct {
	Action  string         `json:"action,omitempty"`
	Title   string         `json:"title,omitempty"`
	Data    any            `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Chart   *figure.Figure `json:"chart,omitempty"`
	Message string         `json:"message,omitempty"`
}

// ErrorResponse は分類・引数エラー時のレスポンスボディです。
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
}

// FromReply はユースケースの Reply をレスポンスに変換します。
func FromReply(r entity.Reply) AskResponse {
	return AskResponse{
		Action:  string(r.Action),
		Title:   r.Title,
		Data:    r.Data,
		Error:   r.Error,
		Chart:   r.Chart,
		Message: r.Message,
	}
}

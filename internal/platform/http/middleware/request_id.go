// Package middleware はginのリクエスト横断処理（リクエストID、アクセスログ、レート制限）を提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// HeaderRequestID はリクエストIDを受け渡すヘッダー名です。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID は gin.Context にリクエストIDを保存するキーです。
	ContextRequestID = "requestID"
)

// RequestID はリクエストごとにIDを採番し、レスポンスヘッダーとリクエストコンテキストのロガーに付与します。
// クライアントが X-Request-ID を送ってきた場合はその値を使います。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)

		// 以降 zerolog.Ctx(ctx) で request_id 付きのロガーが取れる
		logger := log.Logger.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()
	}
}

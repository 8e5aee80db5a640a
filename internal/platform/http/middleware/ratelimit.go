package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Limiter は1回分の操作を今すぐ実行してよいかを返します。
type Limiter interface {
	Allow() bool
}

// RateLimit は limiter が拒否したリクエストを 429 で打ち切ります。
// limiter はルート単位で共有され、クライアント単位ではありません。
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			zerolog.Ctx(c.Request.Context()).Warn().Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			return
		}
		c.Next()
	}
}

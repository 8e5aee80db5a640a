// Package ratelimiter は質問送信など外部呼び出しを伴う操作の頻度を制限します。
package ratelimiter

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter は interval あたり limit 回までの操作を許可するトークンバケットです。
// limit が 0 以下の場合は無制限として扱います。
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	// バースト = limit なので、interval の先頭でまとめて limit 回まで通る
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit)}
}

// Allow は今すぐ1回分の操作を実行してよいかを返します。待機はしません。
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}


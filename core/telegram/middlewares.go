package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"

	"tutorbot/core/config"
	"tutorbot/core/telegram/middleware"
)

// DefaultMiddlewares returns the standard chain: panic recovery,
// per-user rate limiting, request logging and response accounting.
func DefaultMiddlewares(cfg *config.Config) []tele.MiddlewareFunc {
	exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
	for _, kind := range cfg.RateLimit.ExcludeUpdates {
		exclude[kind] = struct{}{}
	}
	return []tele.MiddlewareFunc{
		middleware.RecoverMiddleware,
		middleware.RateLimitMiddleware(middleware.RateLimitOptions{
			Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			Exclude:  exclude,
		}),
		middleware.LoggerMiddleware,
		middleware.MessageMetricsMiddleware,
	}
}

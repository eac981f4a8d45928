package tghelpers

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"tutorbot/core/logger"
)

const ctxKey = "std_ctx"

// StoreContext saves a std context into telebot's per-update store.
func StoreContext(c tele.Context, ctx context.Context) {
	c.Set(ctxKey, ctx)
}

// ContextFrom restores the std context saved by the logging middleware.
// Falls back to a freshly built one when the middleware did not run.
func ContextFrom(c tele.Context) context.Context {
	if v := c.Get(ctxKey); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return BuildContext(c)
}

// BuildContext constructs a std context carrying rid and update identifiers.
func BuildContext(c tele.Context) context.Context {
	upd := c.Update()
	var userID, chatID int64
	if s := c.Sender(); s != nil {
		userID = s.ID
	}
	if ch := c.Chat(); ch != nil {
		chatID = ch.ID
	}
	ctx := logger.WithRID(context.Background(), logger.BuildRID(upd.ID, chatID, userID))
	return logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
}

// WithHandler annotates the stored context with the resolved handler name.
func WithHandler(c tele.Context, name string) context.Context {
	ctx := logger.WithHandler(ContextFrom(c), name)
	StoreContext(c, ctx)
	return ctx
}

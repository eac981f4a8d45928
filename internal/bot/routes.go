// Package bot binds the dialogue engine to the Telegram transport.
package bot

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"tutorbot/core/logger"
	"tutorbot/core/telegram/callbacks"
	tghelpers "tutorbot/core/telegram/helpers"
	"tutorbot/core/telegram/middleware"
	"tutorbot/internal/dialog"
)

// Binding dispatches telebot updates into the engine and delivers its replies.
type Binding struct {
	engine *dialog.Engine
	stats  *StatsHandler
}

// New builds a binding over the engine.
func New(engine *dialog.Engine, stats *StatsHandler) *Binding {
	return &Binding{engine: engine, stats: stats}
}

// Register attaches all routes to the bot.
func (bn *Binding) Register(b *tele.Bot) error {
	b.Handle("/start", bn.wrap("start", func(c tele.Context) dialog.Event {
		return dialog.Event{Kind: dialog.EventStart, UserID: c.Sender().ID}
	}))
	b.Handle(tele.OnText, bn.wrap("on_text", func(c tele.Context) dialog.Event {
		return dialog.Event{Kind: dialog.EventText, UserID: c.Sender().ID, Text: c.Text()}
	}))
	b.Handle(tele.OnCallback, bn.wrap("on_callback", func(c tele.Context) dialog.Event {
		return dialog.Event{
			Kind:    dialog.EventButton,
			UserID:  c.Sender().ID,
			Action:  callbacks.CallbackKey(c),
			Payload: callbacks.CallbackPayload(c),
		}
	}))

	if bn.stats != nil {
		adminOnly := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
			AdminIDs: bn.stats.adminIDs,
		})
		b.Handle("/stats", bn.stats.handle, adminOnly)
	}
	return nil
}

// wrap runs one engine step and logs a per-update summary.
func (bn *Binding) wrap(name string, toEvent func(tele.Context) dialog.Event) tele.HandlerFunc {
	return func(c tele.Context) error {
		started := time.Now()
		ctx := tghelpers.WithHandler(c, name)

		if cb := c.Callback(); cb != nil {
			// Stop the button spinner before doing any work.
			if err := c.Respond(); err != nil {
				logger.TG.Warn("callback.respond_failed", "error", err.Error())
			}
		}

		replies := bn.engine.Handle(ctx, toEvent(c))
		err := deliver(c, replies)

		msgs, kb := middleware.GetCounters(c)
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		logger.Event(ctx, "tg", level, "update.handled",
			slog.String("handler", name),
			slog.String("status", logger.Status(err)),
			slog.Int("messages", msgs),
			slog.Bool("kb", kb),
			slog.Duration("duration", time.Since(started)),
		)
		return err
	}
}

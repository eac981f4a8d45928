package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"tutorbot/core/config"
	"tutorbot/core/logger"
	tghelpers "tutorbot/core/telegram/helpers"
	"tutorbot/core/telegram/sender"
)

// RunOptions describes how to assemble and run the bot.
type RunOptions struct {
	Config *config.Config

	// Routes attaches handlers to the constructed bot.
	Routes func(b *tele.Bot) error
	// Middlewares replaces DefaultMiddlewares when non-nil.
	Middlewares []tele.MiddlewareFunc

	SenderWorkers int

	OnStart func(b *tele.Bot)
	OnStop  func(b *tele.Bot)
}

// RunTelegram builds the bot, wires middlewares and routes, and runs it
// until ctx is cancelled.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		return fmt.Errorf("telegram: nil config")
	}
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram: empty bot token")
	}

	poller := BuildPoller(PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})

	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: BuildHTTPClient(),
		OnError: func(err error, c tele.Context) {
			attrs := []any{"error", err.Error()}
			if c != nil {
				attrs = append(attrs, "rid", logger.RIDFrom(tghelpers.ContextFrom(c)))
			}
			logger.TG.Error("bot.error", attrs...)
		},
	})
	if err != nil {
		return fmt.Errorf("telegram: create bot: %w", err)
	}

	// Longpoll cannot coexist with a registered webhook.
	if cfg.Telegram.RunMode != RunModeWebhook {
		if err := b.RemoveWebhook(false); err != nil {
			logger.TG.Warn("webhook.cleanup_failed", "error", err.Error())
		}
	}

	dispatcher := sender.New(b, cfg.Telegram.Token, sender.Options{Workers: opts.SenderWorkers})
	tghelpers.SetDispatcher(dispatcher)

	mws := opts.Middlewares
	if mws == nil {
		mws = DefaultMiddlewares(cfg)
	}
	for _, mw := range mws {
		b.Use(mw)
	}

	if opts.Routes != nil {
		if err := opts.Routes(b); err != nil {
			return fmt.Errorf("telegram: setup routes: %w", err)
		}
	}

	if opts.OnStart != nil {
		opts.OnStart(b)
	}
	logger.TG.Info("bot.start",
		"run_mode", cfg.Telegram.RunMode,
		"username", b.Me.Username,
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Start()
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}

	b.Stop()
	dispatcher.Shutdown()
	if opts.OnStop != nil {
		opts.OnStop(b)
	}
	// Give the poller a beat to finish in-flight updates before logs close.
	time.Sleep(100 * time.Millisecond)
	logger.TG.Info("bot.stop")
	return nil
}

package tghelpers

import (
	tele "gopkg.in/telebot.v4"

	"tutorbot/core/logger"
	"tutorbot/core/telegram/sender"
)

var dispatcher *sender.Dispatcher

// SetDispatcher wires the async outbound dispatcher used by SendText and friends.
func SetDispatcher(d *sender.Dispatcher) { dispatcher = d }

// Dispatcher returns the configured outbound dispatcher, possibly nil.
func Dispatcher() *sender.Dispatcher { return dispatcher }

func sendAsync(c tele.Context, to tele.Recipient, what interface{}, opts ...interface{}) error {
	if dispatcher == nil {
		_, err := c.Bot().Send(to, what, opts...)
		return err
	}
	dispatcher.Enqueue(sender.Job{
		Ctx:  ContextFrom(c),
		To:   to,
		What: what,
		Opts: opts,
	})
	return nil
}

// SendText sends a plain text response to the current chat via the dispatcher.
func SendText(c tele.Context, text string, opts ...interface{}) error {
	ch := c.Chat()
	if ch == nil {
		logger.TG.Warn("send.skip", "reason", "no_chat")
		return nil
	}
	return sendAsync(c, ch, text, opts...)
}

// SendTo sends a message to an arbitrary recipient via the dispatcher.
func SendTo(c tele.Context, userID int64, what interface{}, opts ...interface{}) error {
	return sendAsync(c, &tele.User{ID: userID}, what, opts...)
}

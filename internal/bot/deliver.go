package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "tutorbot/core/telegram/helpers"
	"tutorbot/core/telegram/keyboard"
	"tutorbot/internal/dialog"
)

// deliver sends engine replies. Third-party replies go through the
// async dispatcher so one recipient's failure stays isolated; replies
// to the event's author are sent in order and the first failure is
// reported to the caller.
func deliver(c tele.Context, replies []dialog.Reply) error {
	var firstErr error
	for _, r := range replies {
		markup := markupFor(r.Keyboard)
		if r.To != 0 {
			if markup != nil {
				_ = tghelpers.SendTo(c, r.To, r.Text, markup)
			} else {
				_ = tghelpers.SendTo(c, r.To, r.Text)
			}
			continue
		}
		var err error
		switch {
		case r.Edit && markup != nil:
			err = c.EditOrSend(r.Text, markup)
		case r.Edit:
			err = c.EditOrSend(r.Text)
		case markup != nil:
			err = c.Send(r.Text, markup)
		default:
			err = c.Send(r.Text)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// markupFor translates the engine's transport-free keyboard into telebot markup.
func markupFor(kb *dialog.Keyboard) *tele.ReplyMarkup {
	if kb == nil {
		return nil
	}
	if kb.Remove {
		return keyboard.RemoveKeyboard()
	}
	if kb.Menu {
		labels := make([]string, 0, len(kb.Buttons))
		for _, b := range kb.Buttons {
			labels = append(labels, b.Label)
		}
		return keyboard.ReplyButtonsNPerRow(perRow(kb), labels...)
	}
	buttons := make([]keyboard.InlineButton, 0, len(kb.Buttons))
	for _, b := range kb.Buttons {
		buttons = append(buttons, keyboard.InlineButton{
			Label:  b.Label,
			Unique: b.Action,
			Data:   b.Payload,
			URL:    b.URL,
		})
	}
	return keyboard.InlineButtonsNPerRow(perRow(kb), buttons)
}

func perRow(kb *dialog.Keyboard) int {
	if kb.PerRow > 0 {
		return kb.PerRow
	}
	return 1
}

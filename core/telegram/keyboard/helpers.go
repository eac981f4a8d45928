// Package keyboard builds reply and inline markups from plain labels.
package keyboard

import tele "gopkg.in/telebot.v4"

// ReplyButtons builds a one-button-per-row reply keyboard from labels.
func ReplyButtons(labels ...string) *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{ResizeKeyboard: true}
	rows := make([]tele.Row, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, kb.Row(kb.Text(l)))
	}
	kb.Reply(rows...)
	return kb
}

// ReplyButtonsNPerRow builds a reply keyboard laying labels n per row.
func ReplyButtonsNPerRow(n int, labels ...string) *tele.ReplyMarkup {
	if n < 1 {
		n = 1
	}
	kb := &tele.ReplyMarkup{ResizeKeyboard: true}
	var rows []tele.Row
	var row []tele.Btn
	for _, l := range labels {
		row = append(row, kb.Text(l))
		if len(row) == n {
			rows = append(rows, kb.Row(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, kb.Row(row...))
	}
	kb.Reply(rows...)
	return kb
}

// InlineButton is a label plus callback payload, optionally a URL button.
type InlineButton struct {
	Label  string
	Unique string
	Data   string
	URL    string
}

// InlineButtonsNPerRow lays out inline buttons n per row.
func InlineButtonsNPerRow(n int, buttons []InlineButton) *tele.ReplyMarkup {
	if n < 1 {
		n = 1
	}
	kb := &tele.ReplyMarkup{}
	var rows []tele.Row
	var row []tele.Btn
	for _, b := range buttons {
		var btn tele.Btn
		if b.URL != "" {
			btn = kb.URL(b.Label, b.URL)
		} else {
			btn = kb.Data(b.Label, b.Unique, b.Data)
		}
		row = append(row, btn)
		if len(row) == n {
			rows = append(rows, kb.Row(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, kb.Row(row...))
	}
	kb.Inline(rows...)
	return kb
}

// InlineButtonsRows builds an inline keyboard with one button per row.
func InlineButtonsRows(buttons []InlineButton) *tele.ReplyMarkup {
	return InlineButtonsNPerRow(1, buttons)
}

// RemoveKeyboard returns markup clearing any visible reply keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

package callbacks

import (
	"strconv"

	tele "gopkg.in/telebot.v4"
)

// CallbackKey returns the unique key of the current update's callback, if any.
func CallbackKey(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	key, _ := ParseCallbackData(cb.Data)
	return key
}

// CallbackPayload returns the payload portion of the current update's callback.
func CallbackPayload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := ParseCallbackData(cb.Data)
	return payload
}

// PayloadInt64 parses a callback payload as a decimal int64.
func PayloadInt64(c tele.Context) (int64, error) {
	return strconv.ParseInt(CallbackPayload(c), 10, 64)
}

// Package callbacks parses telebot callback data into action and payload.
package callbacks

import "strings"

// ParseCallbackData splits raw callback data into its unique key and payload.
// Telebot encodes inline button data as "\f<unique>|<payload>".
func ParseCallbackData(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, ""
}

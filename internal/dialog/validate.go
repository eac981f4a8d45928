package dialog

import (
	"errors"
	"strings"
	"time"
)

var (
	errBadDate = errors.New("bad date")
	errBadLink = errors.New("bad link")
)

// ValidateClassDate accepts dates in ДД.ММ.ГГГГ form.
func ValidateClassDate(s string) error {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("2.1.2006", s); err != nil {
		return errBadDate
	}
	return nil
}

// ValidateLink accepts http and https URLs only.
func ValidateLink(s string) error {
	s = strings.TrimSpace(s)
	for _, scheme := range []string{"http://", "https://"} {
		if rest, ok := strings.CutPrefix(s, scheme); ok && rest != "" {
			return nil
		}
	}
	return errBadLink
}

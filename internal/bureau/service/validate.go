package service

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxShortLen   = 500
	maxMessageLen = 5000
	maxSlots      = 10
	maxListItems  = 20

	minPasswordLen = 6
	maxPasswordLen = 128
)

// normalizeEmail returns the lowercase address when s is a bare, valid
// email address.
func normalizeEmail(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxEmailLen {
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return "", false
	}
	if !strings.Contains(s[strings.LastIndex(s, "@")+1:], ".") {
		return "", false
	}
	return strings.ToLower(s), true
}

// validHTTPURL accepts absolute http and https URLs.
func validHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

// cleanList trims every item and drops the empty ones.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func validatePassword(v *ValidationError, password string) {
	n := utf8.RuneCountInString(password)
	switch {
	case strings.TrimSpace(password) == "":
		v.add("password", "is required")
	case n < minPasswordLen:
		v.add("password", "must be at least 6 characters")
	case n > maxPasswordLen:
		v.add("password", "must be at most 128 characters")
	}
}

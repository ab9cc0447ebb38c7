package form

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinParticipantAge = 16
	MaxParticipantAge = 100
	minPhoneLength    = 10
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	innPattern   = regexp.MustCompile(`^(\d{10}|\d{12})$`)
	// Bare domain with an optional path, e.g. "hh.ru/resume/123".
	bareURLPattern = regexp.MustCompile(`^([A-Za-z0-9-]+\.)+[A-Za-z]{2,}(/\S*)?$`)
)

// IsValidEmail reports whether value looks like local@domain.tld.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsValidINN reports whether value is a Russian tax identifier: exactly 10 or 12 digits.
func IsValidINN(value string) bool {
	return innPattern.MatchString(value)
}

// IsValidPhone strips everything except digits and a leading '+' and
// requires at least ten characters to remain.
func IsValidPhone(value string) bool {
	return len(normalizePhone(value)) >= minPhoneLength
}

func normalizePhone(value string) string {
	value = strings.TrimSpace(value)
	var b strings.Builder
	for i, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidURL accepts absolute URLs with a scheme and host, or a bare
// domain followed by an optional path. Empty input is always rejected.
func IsValidURL(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if u, err := url.Parse(value); err == nil && u.Scheme != "" && u.Host != "" {
		return true
	}
	return bareURLPattern.MatchString(value)
}

// IsValidAge accepts whole numbers within the participant age bounds.
func IsValidAge(value string) bool {
	age, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return age >= MinParticipantAge && age <= MaxParticipantAge
}

package waitlist

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyEmail        = errors.New("Please enter your email address")
	ErrInvalidEmail      = errors.New("Please enter a valid email address")
	ErrAlreadyOnWaitlist = errors.New("This email is already on our waitlist!")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims, validates and lower-cases an address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrEmptyEmail
	}
	if !emailRe.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(email), nil
}

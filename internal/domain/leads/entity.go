package leads

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrFullNameRequired = errors.New("Full name is required")
	ErrEmailRequired    = errors.New("Email is required")
	ErrInvalidEmail     = errors.New("Please enter a valid email address")
	ErrPhoneRequired    = errors.New("Phone number is required")
	ErrPlanRequired     = errors.New("Plan is required")
)

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

// PurchaseIntent is the checkout form submitted from a recommendation card.
type PurchaseIntent struct {
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	CustomInstructions string `json:"customInstructions"`
	PlanName           string `json:"planName"`
	Price              string `json:"price"`
	PlanTitle          string `json:"planTitle"`
}

// Normalize trims every field in place.
func (p *PurchaseIntent) Normalize() {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.CustomInstructions = strings.TrimSpace(p.CustomInstructions)
	p.PlanName = strings.TrimSpace(p.PlanName)
	p.Price = strings.TrimSpace(p.Price)
	p.PlanTitle = strings.TrimSpace(p.PlanTitle)
}

// Validate returns the first failing field's message.
func (p PurchaseIntent) Validate() error {
	switch {
	case strings.TrimSpace(p.FullName) == "":
		return ErrFullNameRequired
	case strings.TrimSpace(p.Email) == "":
		return ErrEmailRequired
	case !emailRe.MatchString(p.Email):
		return ErrInvalidEmail
	case strings.TrimSpace(p.Phone) == "":
		return ErrPhoneRequired
	case strings.TrimSpace(p.PlanName) == "" && strings.TrimSpace(p.PlanTitle) == "":
		return ErrPlanRequired
	}
	return nil
}

// IsValidation reports whether err is one of the form errors above.
func IsValidation(err error) bool {
	return errors.Is(err, ErrFullNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrPhoneRequired) ||
		errors.Is(err, ErrPlanRequired)
}

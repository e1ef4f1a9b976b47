package valueobject

import (
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
)

// PhoneDigits is the number of digits in a canonical phone number
const PhoneDigits = 11

// Phone is a canonical "+7XXXXXXXXXX" phone number
type Phone string

// Error codes returned by phone parsing
var (
	ErrPhoneRequired = shared.NewDomainError("PHONE_REQUIRED", "Phone number is required")
	ErrPhoneInvalid  = shared.NewDomainError("INVALID_PHONE", "Enter a valid phone number")
	ErrPhoneLength   = shared.NewDomainError("INVALID_PHONE", "Phone number must contain 11 digits")
)

// ParsePhone normalizes raw client input into the canonical form.
// Non-digits are dropped, a leading 8 becomes 7, any other leading digit
// gets a 7 prepended and the result is cut to 11 digits.
func ParsePhone(raw string) (Phone, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrPhoneRequired
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", ErrPhoneInvalid
	}

	if digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	if digits[0] != '7' {
		digits = "7" + digits
	}
	if len(digits) > PhoneDigits {
		digits = digits[:PhoneDigits]
	}
	if len(digits) != PhoneDigits {
		return "", ErrPhoneLength
	}

	return Phone("+" + digits), nil
}

// ParseOptionalPhone is ParsePhone that accepts an empty value
func ParseOptionalPhone(raw string) (Phone, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return ParsePhone(raw)
}

// String returns the canonical representation
func (p Phone) String() string {
	return string(p)
}

// IsZero reports whether the phone is empty
func (p Phone) IsZero() bool {
	return p == ""
}

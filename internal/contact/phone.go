// Package contact holds the address book data model: names, validated
// phone numbers, records and the book that indexes them by name.
package contact

import (
	"errors"
	"fmt"
)

// PhoneLength is the exact number of digits a phone number must have.
const PhoneLength = 10

var (
	// ErrInvalidPhone indicates a phone number that is not exactly PhoneLength ASCII digits.
	ErrInvalidPhone = errors.New("contact: phone number must contain exactly 10 digits")

	// ErrPhoneNotFound indicates an edit targeted a phone that is not on the record.
	ErrPhoneNotFound = errors.New("contact: phone not found")

	// ErrEmptyName indicates a record was created without a name.
	ErrEmptyName = errors.New("contact: name is required")
)

// Name is a contact's name. It is set once when the record is created.
type Name string

func (n Name) String() string { return string(n) }

// Phone is a validated phone number. The zero value is not a valid phone;
// obtain one through ParsePhone.
type Phone struct {
	value string
}

// ParsePhone validates s and returns it as a Phone.
func ParsePhone(s string) (Phone, error) {
	if !isPhone(s) {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, s)
	}
	return Phone{value: s}, nil
}

// Value returns the raw digits.
func (p Phone) Value() string { return p.value }

func (p Phone) String() string { return p.value }

// isPhone reports whether s is exactly PhoneLength ASCII digits.
func isPhone(s string) bool {
	if len(s) != PhoneLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package contact

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Record is a contact: a name plus its phone numbers in insertion order.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a record with no phones.
func NewRecord(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Record{name: Name(name)}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the record's phones.
func (r *Record) Phones() []Phone {
	return append([]Phone(nil), r.phones...)
}

// AddPhone validates s and appends it. Duplicates are allowed.
func (r *Record) AddPhone(s string) error {
	p, err := ParsePhone(s)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// AddPhones appends every valid number in ss and returns the combined
// validation errors for the rest.
func (r *Record) AddPhones(ss ...string) error {
	var errs error
	for _, s := range ss {
		errs = multierr.Append(errs, r.AddPhone(s))
	}
	return errs
}

// FindPhone returns the first phone equal to s.
func (r *Record) FindPhone(s string) (Phone, bool) {
	i := r.indexOf(s)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// RemovePhone removes the first phone equal to s. Missing phones are ignored.
func (r *Record) RemovePhone(s string) {
	i := r.indexOf(s)
	if i < 0 {
		return
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
}

// EditPhone replaces oldPhone with newPhone. The replacement is appended
// after the remaining phones. If newPhone is invalid the record is left
// unchanged.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	if r.indexOf(oldPhone) < 0 {
		return fmt.Errorf("%w: %q on %s", ErrPhoneNotFound, oldPhone, r.name)
	}
	p, err := ParsePhone(newPhone)
	if err != nil {
		return err
	}
	r.RemovePhone(oldPhone)
	r.phones = append(r.phones, p)
	return nil
}

func (r *Record) String() string {
	vals := make([]string, len(r.phones))
	for i, p := range r.phones {
		vals[i] = p.value
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(vals, "; "))
}

func (r *Record) indexOf(s string) int {
	for i, p := range r.phones {
		if p.value == s {
			return i
		}
	}
	return -1
}

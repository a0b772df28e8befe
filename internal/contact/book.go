package contact

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// AddressBook indexes records by name. It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name, replacing any record with the same name.
func (b *AddressBook) AddRecord(r *Record) {
	b.records[string(r.name)] = r
}

// Find returns the record stored under name, or nil.
func (b *AddressBook) Find(name string) *Record {
	return b.records[name]
}

// Delete removes the record stored under name. Missing names are ignored.
func (b *AddressBook) Delete(name string) {
	delete(b.records, name)
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// Names returns all record names in sorted order.
func (b *AddressBook) Names() []string {
	names := make([]string, 0, len(b.records))
	for name := range b.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns all records sorted by name.
func (b *AddressBook) Records() []*Record {
	names := b.Names()
	out := make([]*Record, len(names))
	for i, name := range names {
		out[i] = b.records[name]
	}
	return out
}

// Merge copies every record of other into b, replacing same-named records.
func (b *AddressBook) Merge(other *AddressBook) {
	for name, r := range other.records {
		b.records[name] = r
	}
}

// Clone returns a book holding the same records. The records themselves
// are shared, not copied.
func (b *AddressBook) Clone() *AddressBook {
	c := &AddressBook{records: make(map[string]*Record, len(b.records))}
	for name, r := range b.records {
		c.records[name] = r
	}
	return c
}

// Search returns records, sorted by name, whose name contains query
// (case-folded) or that hold a phone containing query.
// An empty query matches every record.
func (b *AddressBook) Search(query string) []*Record {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	var out []*Record
	for _, r := range b.Records() {
		if strings.Contains(fold.String(string(r.name)), q) || r.hasPhoneContaining(q) {
			out = append(out, r)
		}
	}
	return out
}

func (r *Record) hasPhoneContaining(q string) bool {
	if q == "" {
		return true
	}
	for _, p := range r.phones {
		if strings.Contains(p.value, q) {
			return true
		}
	}
	return false
}

package contact

import (
	"encoding/json"
	"fmt"
)

// RecordDoc is the serialized form of a Record, shared by the JSON and
// YAML codecs.
type RecordDoc struct {
	Name   string   `json:"name" yaml:"name"`
	Phones []string `json:"phones" yaml:"phones"`
}

// Document is the serialized form of an AddressBook.
type Document struct {
	Records []RecordDoc `json:"records" yaml:"records"`
}

// ToDocument converts b to its serialized form with records sorted by name.
func (b *AddressBook) ToDocument() Document {
	doc := Document{Records: make([]RecordDoc, 0, len(b.records))}
	for _, r := range b.Records() {
		doc.Records = append(doc.Records, r.toDoc())
	}
	return doc
}

// FromDocument builds a book from its serialized form, validating every
// name and phone.
func FromDocument(doc Document) (*AddressBook, error) {
	b := NewAddressBook()
	for _, rj := range doc.Records {
		r, err := rj.toRecord()
		if err != nil {
			return nil, err
		}
		b.AddRecord(r)
	}
	return b, nil
}

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toDoc())
}

// UnmarshalJSON implements json.Unmarshaler and rejects invalid phones.
func (r *Record) UnmarshalJSON(data []byte) error {
	var rj RecordDoc
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	decoded, err := rj.toRecord()
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b *AddressBook) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.ToDocument())
}

// UnmarshalJSON implements json.Unmarshaler and rejects invalid records.
func (b *AddressBook) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	decoded, err := FromDocument(doc)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

func (r *Record) toDoc() RecordDoc {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.value
	}
	return RecordDoc{Name: string(r.name), Phones: phones}
}

func (rj RecordDoc) toRecord() (*Record, error) {
	r, err := NewRecord(rj.Name)
	if err != nil {
		return nil, err
	}
	for _, s := range rj.Phones {
		if err := r.AddPhone(s); err != nil {
			return nil, fmt.Errorf("record %q: %w", rj.Name, err)
		}
	}
	return r, nil
}

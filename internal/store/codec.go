package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/addressbook/internal/contact"
)

// Format is an interchange format for Export and Import.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an unsupported interchange format.
var ErrUnknownFormat = errors.New("store: unknown format")

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Export writes book to w in the given format, records sorted by name.
func Export(w io.Writer, book *contact.AddressBook, format Format) error {
	doc := book.ToDocument()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("store: encoding json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("store: encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("store: encoding yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// Import reads a book from r. Every phone is validated; unknown fields are rejected.
// Empty input yields an empty book.
func Import(r io.Reader, format Format) (*contact.AddressBook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("store: reading input: %w", err)
	}

	var doc contact.Document
	switch format {
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return contact.NewAddressBook(), nil
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("store: parsing json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			// Empty or comment-only YAML produces EOF with no decoded content.
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("store: parsing yaml: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	book, err := contact.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return book, nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/smileynet/addressbook/internal/contact"
)

// AddCmd creates a contact or adds phones to an existing one.
type AddCmd struct {
	Name   string   `arg:"" help:"Contact name."`
	Phones []string `arg:"" optional:"" help:"Phone numbers (10 digits each)."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

// run adds the contact, enabling testable wiring. Invalid phones abort the
// whole command so the book is never partially updated.
func (c *AddCmd) run(w io.Writer, bs bookStore, name string) error {
	return withBook(bs, name, func(book *contact.AddressBook) (bool, error) {
		r := book.Find(c.Name)
		created := r == nil
		if created {
			var err error
			r, err = contact.NewRecord(c.Name)
			if err != nil {
				return false, fmt.Errorf("add: %w", err)
			}
		}
		if err := r.AddPhones(c.Phones...); err != nil {
			return false, fmt.Errorf("add: %w", err)
		}
		book.AddRecord(r)

		if created {
			_, _ = fmt.Fprintf(w, "Added %s (%s)\n", c.Name, countWord(len(r.Phones()), "phone"))
		} else {
			_, _ = fmt.Fprintf(w, "Updated %s (%s)\n", c.Name, countWord(len(r.Phones()), "phone"))
		}
		return true, nil
	})
}

// ShowCmd prints one contact.
type ShowCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the show command.
func (c *ShowCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *ShowCmd) run(w io.Writer, bs bookStore, name string) error {
	book, _, err := bs.Load(name)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	r := book.Find(c.Name)
	if r == nil {
		return fmt.Errorf("show: %w: %q", errNoContact, c.Name)
	}
	_, _ = fmt.Fprintln(w, r)
	return nil
}

// ListCmd prints every contact sorted by name.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *ListCmd) run(w io.Writer, bs bookStore, name string) error {
	book, _, err := bs.Load(name)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if book.Len() == 0 {
		_, _ = fmt.Fprintf(w, "No contacts in %s\n", name)
		return nil
	}
	for _, r := range book.Records() {
		_, _ = fmt.Fprintln(w, r)
	}
	return nil
}

// SearchCmd prints contacts whose name or number contains a query.
type SearchCmd struct {
	Query string `arg:"" help:"Name fragment (case-insensitive) or digits."`
}

// Run executes the search command.
func (c *SearchCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *SearchCmd) run(w io.Writer, bs bookStore, name string) error {
	book, _, err := bs.Load(name)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	matches := book.Search(c.Query)
	if len(matches) == 0 {
		_, _ = fmt.Fprintf(w, "No matches for %q\n", c.Query)
		return nil
	}
	for _, r := range matches {
		_, _ = fmt.Fprintln(w, r)
	}
	return nil
}

// DeleteCmd removes a contact. Deleting a missing contact is not an error.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *DeleteCmd) run(w io.Writer, bs bookStore, name string) error {
	err := withBook(bs, name, func(book *contact.AddressBook) (bool, error) {
		if book.Find(c.Name) == nil {
			_, _ = fmt.Fprintf(w, "No contact named %s\n", c.Name)
			return false, nil
		}
		book.Delete(c.Name)
		_, _ = fmt.Fprintf(w, "Deleted %s\n", c.Name)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/smileynet/addressbook/internal/contact"
)

// PhoneCmd groups the phone subcommands.
type PhoneCmd struct {
	Add    PhoneAddCmd    `cmd:"" help:"Add a phone number to a contact."`
	Remove PhoneRemoveCmd `cmd:"" help:"Remove a phone number from a contact."`
	Edit   PhoneEditCmd   `cmd:"" help:"Replace one of a contact's phone numbers."`
	Find   PhoneFindCmd   `cmd:"" help:"Check whether a contact has a phone number."`
}

// updateRecord loads the book, applies fn to the named contact and saves
// when fn reports a change.
func updateRecord(bs bookStore, book, name string, fn func(*contact.Record) (bool, error)) error {
	return withBook(bs, book, func(b *contact.AddressBook) (bool, error) {
		r := b.Find(name)
		if r == nil {
			return false, fmt.Errorf("%w: %q", errNoContact, name)
		}
		return fn(r)
	})
}

// PhoneAddCmd adds a phone to an existing contact.
type PhoneAddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number (10 digits)."`
}

// Run executes the phone add command.
func (c *PhoneAddCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("phone add: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *PhoneAddCmd) run(w io.Writer, bs bookStore, book string) error {
	err := updateRecord(bs, book, c.Name, func(r *contact.Record) (bool, error) {
		if err := r.AddPhone(c.Phone); err != nil {
			return false, err
		}
		_, _ = fmt.Fprintf(w, "Added %s to %s\n", c.Phone, c.Name)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("phone add: %w", err)
	}
	return nil
}

// PhoneRemoveCmd removes a phone from a contact. Removing a phone the
// contact does not have is a no-op.
type PhoneRemoveCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number to remove."`
}

// Run executes the phone remove command.
func (c *PhoneRemoveCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("phone remove: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *PhoneRemoveCmd) run(w io.Writer, bs bookStore, book string) error {
	err := updateRecord(bs, book, c.Name, func(r *contact.Record) (bool, error) {
		if _, ok := r.FindPhone(c.Phone); !ok {
			_, _ = fmt.Fprintf(w, "%s has no phone %s\n", c.Name, c.Phone)
			return false, nil
		}
		r.RemovePhone(c.Phone)
		_, _ = fmt.Fprintf(w, "Removed %s from %s\n", c.Phone, c.Name)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("phone remove: %w", err)
	}
	return nil
}

// PhoneEditCmd replaces a phone on a contact.
type PhoneEditCmd struct {
	Name string `arg:"" help:"Contact name."`
	Old  string `arg:"" help:"Existing phone number."`
	New  string `arg:"" help:"Replacement phone number (10 digits)."`
}

// Run executes the phone edit command.
func (c *PhoneEditCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("phone edit: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *PhoneEditCmd) run(w io.Writer, bs bookStore, book string) error {
	err := updateRecord(bs, book, c.Name, func(r *contact.Record) (bool, error) {
		if err := r.EditPhone(c.Old, c.New); err != nil {
			return false, err
		}
		_, _ = fmt.Fprintln(w, r)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("phone edit: %w", err)
	}
	return nil
}

// PhoneFindCmd prints the phone if the contact has it.
type PhoneFindCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number to look for."`
}

// Run executes the phone find command.
func (c *PhoneFindCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("phone find: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

func (c *PhoneFindCmd) run(w io.Writer, bs bookStore, book string) error {
	err := updateRecord(bs, book, c.Name, func(r *contact.Record) (bool, error) {
		p, ok := r.FindPhone(c.Phone)
		if !ok {
			return false, fmt.Errorf("%w: %q on %s", contact.ErrPhoneNotFound, c.Phone, c.Name)
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", r.Name(), p)
		return false, nil
	})
	if err != nil {
		return fmt.Errorf("phone find: %w", err)
	}
	return nil
}

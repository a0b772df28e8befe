package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	addressbook "github.com/smileynet/addressbook"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/store"
)

// errConfigExists is returned by init when the config file is already present.
var errConfigExists = errors.New("config already exists (use --force to overwrite)")

// InitCmd writes the project config and optionally seeds the book.
type InitCmd struct {
	Force  bool `help:"Overwrite an existing config file."`
	Sample bool `help:"Import the sample contacts into the book."`
}

// Run executes the init command.
func (c *InitCmd) Run(g *Globals) error {
	templates := addressbook.OverlayFS(filepath.Join(projectDir, "templates"), addressbook.Templates)
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := c.writeConfig(os.Stdout, templates, configPath); err != nil {
		return err
	}
	if !c.Sample {
		return nil
	}

	s, err := g.open()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer s.close()
	return c.seed(os.Stdout, templates, s.store, s.book)
}

// writeConfig copies the config template to path.
func (c *InitCmd) writeConfig(w io.Writer, templates fs.FS, path string) error {
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("init: %s: %w", path, errConfigExists)
	}
	data, err := fs.ReadFile(templates, addressbook.ConfigTemplate)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

// seed merges the sample template into the named book.
func (c *InitCmd) seed(w io.Writer, templates fs.FS, bs bookStore, name string) error {
	f, err := templates.Open(addressbook.SampleTemplate)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer func() { _ = f.Close() }()

	sample, err := store.Import(f, store.FormatYAML)
	if err != nil {
		return fmt.Errorf("init: sample: %w", err)
	}
	err = withBook(bs, name, func(book *contact.AddressBook) (bool, error) {
		book.Merge(sample)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Added %s to %s\n", countWord(sample.Len(), "sample contact"), name)
	return nil
}

// DemoCmd runs a scripted walkthrough against an in-memory book.
type DemoCmd struct{}

// Run executes the demo command.
func (c *DemoCmd) Run() error {
	return c.run(os.Stdout)
}

// run adds John and Jane, edits and finds a phone, then deletes Jane.
func (c *DemoCmd) run(w io.Writer) error {
	book := contact.NewAddressBook()

	john, err := contact.NewRecord("John")
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if err := john.AddPhones("1234567890", "5555555555"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	book.AddRecord(john)

	jane, err := contact.NewRecord("Jane")
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if err := jane.AddPhone("9876543210"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	book.AddRecord(jane)

	for _, r := range book.Records() {
		_, _ = fmt.Fprintln(w, r)
	}

	r := book.Find("John")
	if err := r.EditPhone("1234567890", "1112223333"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	_, _ = fmt.Fprintln(w, r)

	if p, ok := r.FindPhone("5555555555"); ok {
		_, _ = fmt.Fprintf(w, "%s: %s\n", r.Name(), p)
	}

	book.Delete("Jane")
	_, _ = fmt.Fprintf(w, "Deleted Jane (%s left)\n", countWord(book.Len(), "contact"))
	return nil
}

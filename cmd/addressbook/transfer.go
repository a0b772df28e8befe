package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/smileynet/addressbook/internal/store"
)

// bookLister lists saved books.
type bookLister interface {
	List() ([]string, error)
}

// BooksCmd lists the saved address books.
type BooksCmd struct{}

// Run executes the books command.
func (c *BooksCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("books: %w", err)
	}
	defer s.close()
	return c.run(os.Stdout, s.store, s.book)
}

// run prints one book per line, marking the active one.
func (c *BooksCmd) run(w io.Writer, bl bookLister, active string) error {
	names, err := bl.List()
	if err != nil {
		return fmt.Errorf("books: %w", err)
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No saved books")
		return nil
	}
	for _, n := range names {
		marker := "  "
		if n == active {
			marker = "* "
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", marker, n)
	}
	return nil
}

// ExportCmd writes the book to stdout or a file.
type ExportCmd struct {
	Format string `help:"Output format (json or yaml)." default:"json" enum:"json,yaml,yml" short:"f"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

// Run executes the export command.
func (c *ExportCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer s.close()

	if c.Output == "" {
		return c.run(os.Stdout, s.store, s.book)
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := c.run(f, s.store, s.book); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func (c *ExportCmd) run(w io.Writer, bs bookStore, name string) error {
	format, err := store.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	book, _, err := bs.Load(name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := store.Export(w, book, format); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ImportCmd merges contacts from a JSON or YAML file into the book.
// Imported contacts replace existing ones with the same name.
type ImportCmd struct {
	File   string `arg:"" help:"File to import (- for stdin)."`
	Format string `help:"Input format (json or yaml). Defaults to the file extension." short:"f"`
}

// Run executes the import command.
func (c *ImportCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer s.close()

	if c.File == "-" {
		return c.run(os.Stdout, os.Stdin, s.store, s.book)
	}
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer func() { _ = f.Close() }()
	return c.run(os.Stdout, f, s.store, s.book)
}

// format resolves the input format from the flag or the file extension.
func (c *ImportCmd) format() (store.Format, error) {
	if c.Format != "" {
		return store.ParseFormat(c.Format)
	}
	ext := strings.TrimPrefix(filepath.Ext(c.File), ".")
	if ext == "" {
		return store.FormatJSON, nil
	}
	return store.ParseFormat(ext)
}

func (c *ImportCmd) run(w io.Writer, r io.Reader, bs bookStore, name string) error {
	format, err := c.format()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	incoming, err := store.Import(r, format)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	book, _, err := bs.Load(name)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	book.Merge(incoming)
	if err := bs.Save(name, book); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Imported %s into %s\n", countWord(incoming.Len(), "contact"), name)
	return nil
}

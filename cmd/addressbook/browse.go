package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/browse"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/store"
)

// BrowseCmd opens the interactive contact browser.
type BrowseCmd struct {
	Watch bool `help:"Reload when the book file changes on disk." short:"w"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the browser.
func (c *BrowseCmd) Run(g *Globals) error {
	if !browse.IsTTY(os.Stdout) {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}

	s, err := g.open()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer s.close()

	if s.cfg.Display.Plain {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	adapter := &bookAdapter{store: s.store, name: s.book}
	m := browse.NewModel(adapter, browse.WithSaver(adapter))
	prog := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if c.Watch {
		go func() {
			err := s.store.Watch(ctx, s.book, store.DefaultDebounce, func() {
				prog.Send(browse.ReloadMsg{})
			})
			if err != nil {
				s.logger.Warn("watch stopped", zap.String("book", s.book), zap.Error(err))
			}
		}()
	}

	return c.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (c *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// bookAdapter binds a named book in the store to browse.BookLoader and
// browse.BookSaver.
type bookAdapter struct {
	store bookStore
	name  string
}

func (a *bookAdapter) Load() (*contact.AddressBook, error) {
	book, _, err := a.store.Load(a.name)
	return book, err
}

func (a *bookAdapter) Save(book *contact.AddressBook) error {
	if book == nil {
		return errors.New("nil book")
	}
	return a.store.Save(a.name, book)
}

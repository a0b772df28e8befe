// Package browse implements a two-pane TUI for browsing an address book:
// contact names on the left, the selected contact's phones on the right.
package browse

import "github.com/smileynet/addressbook/internal/contact"

// Mode represents the current browser input mode.
type Mode int

const (
	ModeList    Mode = iota // Navigating the contact list.
	ModeFilter              // Typing a search query.
	ModeConfirm             // Waiting for y/n on a delete.
)

// BookLoader loads the book being browsed.
type BookLoader interface {
	Load() (*contact.AddressBook, error)
}

// BookSaver persists the book after a deletion.
type BookSaver interface {
	Save(book *contact.AddressBook) error
}

// BookLoadedMsg carries the result of a load.
type BookLoadedMsg struct {
	Book *contact.AddressBook
	Err  error
}

// ReloadMsg requests a fresh load, e.g. after the book file changed on disk.
type ReloadMsg struct{}

// SavedMsg carries the result of saving after a delete.
type SavedMsg struct {
	Name string
	Err  error
}

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smileynet/addressbook/internal/contact"
)

func sampleBook(t *testing.T) *contact.AddressBook {
	t.Helper()
	book := contact.NewAddressBook()
	john, err := contact.NewRecord("John")
	if err != nil {
		t.Fatal(err)
	}
	if err := john.AddPhones("1234567890", "5555555555"); err != nil {
		t.Fatal(err)
	}
	jane, err := contact.NewRecord("Jane")
	if err != nil {
		t.Fatal(err)
	}
	if err := jane.AddPhone("9876543210"); err != nil {
		t.Fatal(err)
	}
	book.AddRecord(john)
	book.AddRecord(jane)
	return book
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	// Given a book to persist
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "books"))
	book := sampleBook(t)

	// When Save is called
	if err := store.Save("default", book); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Then Load returns the same records
	loaded, found, err := store.Load("default")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() found = false, want true")
	}
	if loaded.Len() != 2 {
		t.Errorf("Len() = %d, want 2", loaded.Len())
	}
	john := loaded.Find("John")
	if john == nil {
		t.Fatal("Find(John) = nil")
	}
	if got := john.String(); got != "Contact name: John, phones: 1234567890; 5555555555" {
		t.Errorf("John = %q", got)
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.Save("default", sampleBook(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "default.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want [default.json]", names)
	}
}

func TestFileStore_LoadNotFound(t *testing.T) {
	// Given an empty store
	store := NewFileStore(t.TempDir())

	// When Load is called for a missing book
	book, found, err := store.Load("nonexistent")

	// Then it returns an empty book, not found
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("Load() found = true, want false")
	}
	if book == nil || book.Len() != 0 {
		t.Errorf("Load() book = %v, want empty book", book)
	}
}

func TestFileStore_LoadRejectsInvalidPhone(t *testing.T) {
	// Given a book file edited by hand with a malformed phone
	dir := t.TempDir()
	store := NewFileStore(dir)
	data := []byte(`{"records":[{"name":"John","phones":["555-0100"]}]}`)
	if err := os.WriteFile(filepath.Join(dir, "default.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	// When Load is called
	_, _, err := store.Load("default")

	// Then the validation error surfaces
	if !errors.Is(err, contact.ErrInvalidPhone) {
		t.Errorf("Load() error = %v, want ErrInvalidPhone", err)
	}
}

func TestFileStore_Remove(t *testing.T) {
	// Given a saved book
	store := NewFileStore(t.TempDir())
	if err := store.Save("work", sampleBook(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// When Remove is called
	if err := store.Remove("work"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// Then Load returns not found
	_, found, _ := store.Load("work")
	if found {
		t.Error("Load() found = true after Remove, want false")
	}

	// Removing again is a no-op.
	if err := store.Remove("work"); err != nil {
		t.Errorf("Remove(missing) error = %v, want nil", err)
	}
}

func TestFileStore_List(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	// Given two books and some unrelated files
	for _, name := range []string{"work", "home"} {
		if err := store.Save(name, contact.NewAddressBook()); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".work.123.tmp"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// When List is called
	names, err := store.List()

	// Then only book names are returned, sorted
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 || names[0] != "home" || names[1] != "work" {
		t.Errorf("List() = %v, want [home work]", names)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() = %v, want empty", names)
	}
}

func TestFileStore_PathTraversal(t *testing.T) {
	store := NewFileStore(t.TempDir())

	tests := []struct {
		name string
		book string
	}{
		{name: "parent traversal", book: "../../etc/passwd"},
		{name: "slash in name", book: "foo/bar"},
		{name: "empty name", book: ""},
		{name: "dot dot", book: ".."},
		{name: "current dir", book: "."},
		{name: "hidden", book: ".secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When Save is called with an invalid name
			err := store.Save(tt.book, contact.NewAddressBook())

			// Then it returns ErrInvalidName
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Save(%q) error = %v, want ErrInvalidName", tt.book, err)
			}

			_, _, err = store.Load(tt.book)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Load(%q) error = %v, want ErrInvalidName", tt.book, err)
			}

			err = store.Remove(tt.book)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Remove(%q) error = %v, want ErrInvalidName", tt.book, err)
			}
		})
	}
}

func TestFileStore_LogsSave(t *testing.T) {
	// Given a store with an observing logger
	core, logs := observer.New(zap.DebugLevel)
	store := NewFileStore(t.TempDir(), WithLogger(zap.New(core)))

	// When Save is called
	if err := store.Save("default", sampleBook(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Then a debug entry records the path and record count
	entries := logs.FilterMessage("saved book").All()
	if len(entries) != 1 {
		t.Fatalf("saved book entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["records"]; got != int64(2) {
		t.Errorf("records field = %v, want 2", got)
	}
}

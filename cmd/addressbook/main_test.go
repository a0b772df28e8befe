package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/store"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

func TestFeature_CLISkeleton(t *testing.T) {
	t.Run("version flag prints version commit and date", func(t *testing.T) {
		// Given: a CLI parser with version, commit, and date fields
		var cli CLI
		var buf bytes.Buffer
		versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
		k, err := kong.New(&cli,
			kong.Vars{"version": versionStr},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version flag is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: version, commit, and date are all present in output
			output := buf.String()
			for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
				if !strings.Contains(output, want) {
					t.Errorf("version output = %q, want to contain %q", output, want)
				}
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args shows usage and errors", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		// When: no arguments are provided
		_, err = k.Parse([]string{})

		// Then: an error is returned (usage printed)
		if err == nil {
			t.Fatal("expected error when no command provided")
		}
	})

	t.Run("global book flag is parsed", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		// When: --book and --verbose precede a command
		_, err = k.Parse([]string{"-b", "work", "-v", "list"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the globals carry the overrides
		if cli.Book != "work" {
			t.Errorf("Book = %q, want %q", cli.Book, "work")
		}
		if !cli.Verbose {
			t.Error("Verbose = false, want true")
		}
	})

	t.Run("phone edit arguments are parsed", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		// When: phone edit is invoked
		_, err = k.Parse([]string{"phone", "edit", "John", "1234567890", "1112223333"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the positional arguments are bound in order
		got := cli.Phone.Edit
		if got.Name != "John" || got.Old != "1234567890" || got.New != "1112223333" {
			t.Errorf("phone edit = %+v", got)
		}
	})

	t.Run("add accepts zero or more phones", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		_, err = k.Parse([]string{"add", "John", "1234567890", "5555555555"})
		if err != nil {
			t.Fatal(err)
		}

		if len(cli.Add.Phones) != 2 {
			t.Errorf("phones = %v, want 2", cli.Add.Phones)
		}
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		_, err = k.Parse([]string{"export", "--format", "xml"})

		if err == nil {
			t.Fatal("expected error for --format xml")
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitSuccess},
		{name: "invalid phone", err: fmt.Errorf("add: %w", contact.ErrInvalidPhone), want: exitLookup},
		{name: "phone not found", err: fmt.Errorf("phone edit: %w", contact.ErrPhoneNotFound), want: exitLookup},
		{name: "empty name", err: contact.ErrEmptyName, want: exitLookup},
		{name: "no contact", err: fmt.Errorf("show: %w", errNoContact), want: exitLookup},
		{name: "bad book name", err: fmt.Errorf("list: %w", store.ErrInvalidName), want: exitSetup},
		{name: "other", err: errors.New("disk full"), want: exitSetup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCountWord(t *testing.T) {
	for n, want := range map[int]string{0: "0 phones", 1: "1 phone", 2: "2 phones"} {
		if got := countWord(n, "phone"); got != want {
			t.Errorf("countWord(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Errorf("newLogger(debug) error: %v", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("newLogger(loud) expected error")
	}
}

func TestFeature_DemoCommand(t *testing.T) {
	// Given a demo command
	var buf bytes.Buffer

	// When it runs
	if err := (&DemoCmd{}).run(&buf); err != nil {
		t.Fatal(err)
	}

	// Then it prints the walkthrough in order
	want := "Contact name: Jane, phones: 9876543210\n" +
		"Contact name: John, phones: 1234567890; 5555555555\n" +
		"Contact name: John, phones: 5555555555; 1112223333\n" +
		"John: 5555555555\n" +
		"Deleted Jane (1 contact left)\n"
	if buf.String() != want {
		t.Errorf("demo output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestFeature_BrowseCommand(t *testing.T) {
	t.Run("browse subcommand is parsed", func(t *testing.T) {
		// Given a CLI parser
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		// When browse --watch is invoked
		kctx, err := k.Parse([]string{"browse", "--watch"})
		if err != nil {
			t.Fatal(err)
		}

		// Then the command and flag are parsed
		if kctx.Command() != "browse" {
			t.Errorf("got command %q, want %q", kctx.Command(), "browse")
		}
		if !cli.Browse.Watch {
			t.Error("Watch = false, want true")
		}
	})

	t.Run("run returns error when not a TTY", func(t *testing.T) {
		// Given a BrowseCmd
		cmd := &BrowseCmd{}

		// When run is called with isTTY=false
		err := cmd.run(false, nil)

		// Then an error mentioning "terminal" is returned
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "terminal") {
			t.Errorf("error = %q, want to contain 'terminal'", err)
		}
	})

	t.Run("run executes tea program when TTY", func(t *testing.T) {
		// Given a BrowseCmd and a mock tea program
		cmd := &BrowseCmd{}
		mock := &mockTeaRunner{}

		// When run is called with isTTY=true
		err := cmd.run(true, mock)

		// Then no error is returned
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// And the program was run
		if !mock.ran {
			t.Error("tea program was not run")
		}
	})

	t.Run("run returns tea program error", func(t *testing.T) {
		// Given a BrowseCmd and a mock that fails
		cmd := &BrowseCmd{}
		mock := &mockTeaRunner{err: fmt.Errorf("tea: terminal error")}

		// When run is called
		err := cmd.run(true, mock)

		// Then the tea error is returned
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "tea: terminal error") {
			t.Errorf("error = %q, want to contain tea error", err)
		}
	})

	t.Run("adapter loads and saves the named book", func(t *testing.T) {
		// Given an adapter over a file store
		fs := store.NewFileStore(t.TempDir())
		a := &bookAdapter{store: fs, name: "work"}
		book := contact.NewAddressBook()
		r, _ := contact.NewRecord("John")
		book.AddRecord(r)

		// When the book is saved through the adapter
		if err := a.Save(book); err != nil {
			t.Fatal(err)
		}

		// Then loading through the adapter returns it
		got, err := a.Load()
		if err != nil {
			t.Fatal(err)
		}
		if got.Find("John") == nil {
			t.Error("John missing after save through adapter")
		}
	})
}

// mockTeaRunner stubs tea program execution for BrowseCmd testing.
type mockTeaRunner struct {
	ran bool
	err error
}

func (m *mockTeaRunner) Run() (tea.Model, error) {
	m.ran = true
	return nil, m.err
}

// Compile-time check: mockTeaRunner satisfies teaRunner.
var _ teaRunner = (*mockTeaRunner)(nil)

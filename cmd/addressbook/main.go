package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// projectDir holds the project config, templates and (by default) books.
const projectDir = ".addressbook"

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Add     AddCmd           `cmd:"" help:"Add a contact, or add phones to an existing one."`
	Show    ShowCmd          `cmd:"" help:"Show a contact."`
	List    ListCmd          `cmd:"" help:"List all contacts."`
	Search  SearchCmd        `cmd:"" help:"Search contacts by name or number."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	Phone   PhoneCmd         `cmd:"" help:"Manage a contact's phone numbers."`
	Books   BooksCmd         `cmd:"" help:"List saved address books."`
	Export  ExportCmd        `cmd:"" help:"Export the address book as JSON or YAML."`
	Import  ImportCmd        `cmd:"" help:"Import contacts from a JSON or YAML file."`
	Browse  BrowseCmd        `cmd:"" help:"Open the interactive contact browser."`
	Init    InitCmd          `cmd:"" help:"Write a project config file."`
	Demo    DemoCmd          `cmd:"" help:"Run an in-memory walkthrough of the address book."`
}

// Globals are flags shared by every command.
type Globals struct {
	Book    string `help:"Address book to use (default from config)." short:"b"`
	Verbose bool   `help:"Log diagnostics to stderr." short:"v"`
}

// bookStore abstracts book persistence for testing.
type bookStore interface {
	Load(name string) (*contact.AddressBook, bool, error)
	Save(name string, book *contact.AddressBook) error
}

// session bundles what a command needs after config is resolved.
type session struct {
	cfg    *config.Config
	store  *store.FileStore
	book   string
	logger *zap.Logger
}

// close flushes the logger.
func (s *session) close() {
	_ = s.logger.Sync()
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		filepath.Join(projectDir, "config.yaml"),
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open resolves config, applies global flag overrides and builds the store.
func (g *Globals) open() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides.
	if g.Book != "" {
		cfg.Store.Book = g.Book
	}
	if g.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		store:  store.NewFileStore(cfg.Store.Dir, store.WithLogger(logger)),
		book:   cfg.Store.Book,
		logger: logger,
	}, nil
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.DisableStacktrace = true
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// errNoContact indicates a command named a contact that is not in the book.
var errNoContact = errors.New("no such contact")

// Exit codes.
const (
	exitSuccess = 0
	exitLookup  = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	// Bad input and missing contacts/phones are user errors, not setup failures.
	if errors.Is(err, contact.ErrInvalidPhone) ||
		errors.Is(err, contact.ErrPhoneNotFound) ||
		errors.Is(err, contact.ErrEmptyName) ||
		errors.Is(err, errNoContact) {
		return exitLookup
	}
	return exitSetup
}

// countWord returns "1 phone" / "2 phones".
func countWord(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// withBook runs fn against a freshly loaded book and saves it when fn
// reports a change. Nothing is saved if fn fails.
func withBook(bs bookStore, name string, fn func(*contact.AddressBook) (bool, error)) error {
	book, _, err := bs.Load(name)
	if err != nil {
		return err
	}
	changed, err := fn(book)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return bs.Save(name, book)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("A contact address book with validated phone numbers."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

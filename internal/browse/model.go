package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/contact"
)

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the contact browser.
type Model struct {
	loader BookLoader
	saver  BookSaver

	book    *contact.AddressBook
	records []*contact.Record // visible records after filtering
	cursor  int
	loading bool
	err     error
	status  string

	mode    Mode
	pending string // name awaiting delete confirmation
	filter  textinput.Model
	help    help.Model

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithSaver enables deletion; without a saver the delete key is ignored.
func WithSaver(s BookSaver) Option {
	return func(m *Model) { m.saver = s }
}

// NewModel creates a browser in list mode that loads its book on Init.
func NewModel(loader BookLoader, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "name or number"

	m := Model{
		loader:  loader,
		loading: true,
		mode:    ModeList,
		filter:  ti,
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return loadBook(m.loader)
}

// loadBook returns a tea.Cmd that calls loader.Load() asynchronously
// and wraps the result in a BookLoadedMsg.
func loadBook(loader BookLoader) tea.Cmd {
	return func() tea.Msg {
		book, err := loader.Load()
		return BookLoadedMsg{Book: book, Err: err}
	}
}

// saveBook returns a tea.Cmd that persists book after name was deleted.
// book must not be mutated after the command is returned.
func saveBook(saver BookSaver, book *contact.AddressBook, name string) tea.Cmd {
	return func() tea.Msg {
		return SavedMsg{Name: name, Err: saver.Save(book)}
	}
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case BookLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			m.book = nil
			m.records = nil
			return m, nil
		}
		m.err = nil
		m.book = msg.Book
		m.refresh()
		return m, nil

	case ReloadMsg:
		m.loading = true
		return m, loadBook(m.loader)

	case SavedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Save failed: %s", msg.Err)
		} else {
			m.status = fmt.Sprintf("Deleted %s", msg.Name)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeFilter:
			return m.handleFilterKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleListKey(msg)
		}
	}

	if m.mode == ModeFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := ListKeyMap()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Reload):
		m.loading = true
		m.err = nil
		return m, loadBook(m.loader)
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if len(m.records) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.records) - 1
			}
		}

	case key.Matches(msg, keys.Down):
		if len(m.records) > 0 {
			m.cursor++
			if m.cursor >= len(m.records) {
				m.cursor = 0
			}
		}

	case key.Matches(msg, keys.Filter):
		m.mode = ModeFilter
		m.status = ""
		return m, m.filter.Focus()

	case key.Matches(msg, keys.Delete):
		name := m.SelectedName()
		if name == "" || m.saver == nil {
			return m, nil
		}
		m.mode = ModeConfirm
		m.pending = name
		m.status = ""
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := FilterKeyMap()
	switch {
	case key.Matches(msg, keys.Apply):
		m.mode = ModeList
		m.filter.Blur()
		return m, nil

	case key.Matches(msg, keys.Cancel):
		m.mode = ModeList
		m.filter.Blur()
		m.filter.SetValue("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := ConfirmKeyMap()
	switch {
	case key.Matches(msg, keys.Yes):
		name := m.pending
		m.mode = ModeList
		m.pending = ""
		if m.book == nil {
			return m, nil
		}
		m.book.Delete(name)
		m.refresh()
		return m, saveBook(m.saver, m.book.Clone(), name)

	case key.Matches(msg, keys.No):
		m.mode = ModeList
		m.pending = ""
	}
	return m, nil
}

// refresh recomputes the visible records from the book and the filter,
// keeping the cursor on the same contact when it is still visible.
func (m *Model) refresh() {
	selected := m.SelectedName()
	if m.book == nil {
		m.records = nil
		m.cursor = 0
		return
	}
	m.records = m.book.Search(m.filter.Value())
	m.cursor = 0
	for i, r := range m.records {
		if r.Name().String() == selected {
			m.cursor = i
			break
		}
	}
}

// SelectedName returns the contact name at the cursor, or "" if none.
func (m Model) SelectedName() string {
	if len(m.records) == 0 || m.cursor < 0 || m.cursor >= len(m.records) {
		return ""
	}
	return m.records[m.cursor].Name().String()
}

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the two-pane layout with help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	leftStyle := FocusedBorder().
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle := UnfocusedBorder().
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(m.viewList()),
		rightStyle.Render(m.viewDetail()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.help.View(m.helpKeys()))
}

// helpKeys returns the key map for the current mode.
func (m Model) helpKeys() help.KeyMap {
	switch m.mode {
	case ModeFilter:
		return FilterKeyMap()
	case ModeConfirm:
		return ConfirmKeyMap()
	default:
		return ListKeyMap()
	}
}

// viewList renders the name pane.
func (m Model) viewList() string {
	var b strings.Builder
	if m.mode == ModeFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("Loading contacts...")
		return b.String()
	case m.err != nil:
		b.WriteString(errorText.Render(fmt.Sprintf("Error: %s", m.err)))
		b.WriteString("\n\nPress r to retry")
		return b.String()
	case len(m.records) == 0:
		if m.filter.Value() != "" {
			b.WriteString(mutedText.Render(fmt.Sprintf("No matches for %q", m.filter.Value())))
		} else {
			b.WriteString(mutedText.Render("No contacts"))
		}
		return b.String()
	}

	for i, r := range m.records {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == m.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(r.Name().String())
	}
	return b.String()
}

// viewDetail renders the selected contact, or the delete confirmation.
func (m Model) viewDetail() string {
	var b strings.Builder

	if m.mode == ModeConfirm {
		fmt.Fprintf(&b, "Delete %s?\n", m.pending)
		b.WriteString("\n  [y] Delete   [n] Cancel")
		return b.String()
	}

	name := m.SelectedName()
	if name == "" {
		b.WriteString(mutedText.Render("No contact selected"))
	} else {
		r := m.records[m.cursor]
		b.WriteString(titleText.Render(name))
		b.WriteString("\n")
		phones := r.Phones()
		if len(phones) == 0 {
			b.WriteString("\n" + mutedText.Render("No phone numbers"))
		}
		for _, p := range phones {
			b.WriteString("\n  • " + phoneText.Render(p.Value()))
		}
	}

	if m.status != "" {
		b.WriteString("\n\n" + mutedText.Render(m.status))
	}
	return b.String()
}

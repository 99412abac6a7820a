// Package tui is the interactive terminal UI of the docsum client.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docsum/internal/model"
	"docsum/internal/workflow"
)

const (
	msgUploadOK     = "File summarized successfully!"
	msgUploadFailed = "Error summarizing file!"
	msgDeleteOK     = "File deleted successfully!"
	msgDeleteFailed = "Error deleting file!"
	msgClearOK      = "All files deleted successfully!"
	msgClearFailed  = "Error deleting all files!"

	promptDelete    = "Are you sure you want to delete this file? (y/n)"
	promptDeleteAll = "Delete all files? (y/n)"

	listWidth = 38
)

type mode int

const (
	modeBrowse mode = iota
	modeUploadInput
	modeAskInput
	modeConfirmDelete
	modeConfirmDeleteAll
)

// Model is the root bubbletea model.
//
// It never mutates the session inside Update: every workflow call runs in a tea.Cmd and the
// view is rebuilt from the session when a stateChangedMsg or a completion message arrives.
type Model struct {
	ctx     context.Context
	session *workflow.Session
	keys    KeyMap
	styles  Styles

	mode     mode
	cursor   int
	pending  string // id awaiting delete confirmation
	input    textinput.Model
	spinner  spinner.Model
	status   string
	failed   bool
	exchange *workflow.Exchange

	width    int
	readFile func(string) ([]byte, error)
}

// New creates the model over session.
func New(ctx context.Context, session *workflow.Session) Model {
	in := textinput.New()
	in.CharLimit = 4096

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		session:  session,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		input:    in,
		spinner:  sp,
		readFile: os.ReadFile,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateChangedMsg:
		m.clampCursor()
		return m, nil

	case refreshDoneMsg:
		m.clampCursor()
		if msg.err != nil {
			m.setStatus(workflow.Describe(msg.err), true)
		}
		return m, nil

	case viewDoneMsg:
		if msg.err != nil {
			m.setStatus(workflow.Describe(msg.err), true)
			return m, nil
		}
		m.cursorTo(msg.id)
		return m, nil

	case clearDoneMsg:
		return m, nil

	case uploadDoneMsg:
		switch {
		case msg.err == nil:
			m.setStatus(msgUploadOK, false)
			m.cursorTo(msg.doc.ID)
		case workflow.IsPrecondition(msg.err):
			m.setStatus(workflow.Describe(msg.err), true)
		default:
			m.setStatus(msgUploadFailed+" "+workflow.Describe(msg.err), true)
		}
		return m, nil

	case askDoneMsg:
		if msg.err != nil {
			m.setStatus(workflow.Describe(msg.err), true)
			return m, nil
		}
		ex := msg.exchange
		m.exchange = &ex
		return m, nil

	case deleteDoneMsg:
		m.clampCursor()
		if msg.err != nil {
			m.setStatus(msgDeleteFailed, true)
		} else {
			m.setStatus(msgDeleteOK, false)
		}
		return m, nil

	case deleteAllDoneMsg:
		m.clampCursor()
		if msg.err != nil {
			m.setStatus(msgClearFailed, true)
		} else {
			m.setStatus(msgClearOK, false)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeUploadInput, modeAskInput:
			return m.updateInput(msg)
		case modeConfirmDelete, modeConfirmDeleteAll:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	docs := m.session.Documents.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(docs)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.View):
		if len(docs) > 0 {
			return m, m.viewCmd(docs[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Clear):
		return m, m.clearCmd()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.Upload):
		return m.openInput(modeUploadInput, "path to file: ")
	case key.Matches(msg, m.keys.Ask):
		return m.openInput(modeAskInput, "ask: ")
	case key.Matches(msg, m.keys.Delete):
		if len(docs) > 0 {
			m.pending = docs[m.cursor].ID
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.DeleteAll):
		if len(docs) > 0 {
			m.mode = modeConfirmDeleteAll
		}
	}
	return m, nil
}

func (m Model) openInput(md mode, prompt string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue("")
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		md := m.mode
		m.closeInput()
		if md == modeUploadInput {
			return m, m.uploadCmd(strings.TrimSpace(value))
		}
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m, m.askCmd(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		md, id := m.mode, m.pending
		m.mode, m.pending = modeBrowse, ""
		if md == modeConfirmDelete {
			return m, m.deleteCmd(id)
		}
		return m, m.deleteAllCmd()
	case key.Matches(msg, m.keys.Cancel):
		m.mode, m.pending = modeBrowse, ""
	}
	return m, nil
}

func (m *Model) setStatus(s string, failed bool) {
	m.status, m.failed = s, failed
}

func (m *Model) clampCursor() {
	n := m.session.Documents.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) cursorTo(id string) {
	for i, d := range m.session.Documents.Snapshot() {
		if d.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.session.Library.Refresh(m.ctx)}
	}
}

func (m Model) viewCmd(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.Library.View(m.ctx, id)
		return viewDoneMsg{id: id, err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		m.session.Library.ClearSelection()
		return clearDoneMsg{}
	}
}

func (m Model) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		var content []byte
		if path != "" {
			b, err := m.readFile(path)
			if err != nil {
				return uploadDoneMsg{err: fmt.Errorf("read %s: %w", path, err)}
			}
			content = b
		}
		doc, err := m.session.Upload.Run(m.ctx, workflow.File{Name: path, Content: content})
		return uploadDoneMsg{doc: doc, err: err}
	}
}

func (m Model) askCmd(prompt string) tea.Cmd {
	return func() tea.Msg {
		ex, err := m.session.Assistant.Ask(m.ctx, prompt)
		return askDoneMsg{exchange: ex, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: m.session.Library.Delete(m.ctx, id)}
	}
}

func (m Model) deleteAllCmd() tea.Cmd {
	return func() tea.Msg {
		return deleteAllDoneMsg{err: m.session.Library.DeleteAll(m.ctx)}
	}
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("docsum"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), " ", m.detailView()))
	b.WriteString("\n")

	if m.exchange != nil {
		b.WriteString(m.assistantView())
		b.WriteString("\n")
	}

	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) listView() string {
	docs := m.session.Documents.Snapshot()
	if len(docs) == 0 {
		return m.styles.Pane.Width(listWidth).Render(m.styles.Muted.Render("No files uploaded yet."))
	}

	lines := make([]string, 0, len(docs)*2)
	for i, d := range docs {
		name := d.Filename
		if m.session.Selection.Is(d.ID) {
			name = m.styles.Selected.Render(name)
		}
		if i == m.cursor {
			lines = append(lines, m.styles.Cursor.Render("> "+name))
		} else {
			lines = append(lines, m.styles.Item.Render(name))
		}

		excerpt := d.Summary
		if excerpt == "" {
			excerpt = d.PreviewText
		}
		if excerpt != "" {
			lines = append(lines, m.styles.Item.Render(m.styles.Muted.Render(truncate(excerpt, listWidth-6))))
		}
	}
	return m.styles.Pane.Width(listWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) detailView() string {
	doc, ok := m.session.Selected()
	if !ok {
		return m.styles.Pane.Render(m.styles.Muted.Render("Select a file and press enter to view it."))
	}
	return m.styles.Pane.Width(m.detailWidth()).Render(detailText(m.styles, doc))
}

func (m Model) detailWidth() int {
	if m.width <= listWidth+8 {
		return 60
	}
	return m.width - listWidth - 8
}

func detailText(s Styles, doc model.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("File:"), doc.Filename)
	fmt.Fprintf(&b, "%s %s\n\n", s.Label.Render("Uploaded at:"), doc.UploadedAtString())
	if doc.HasContent() {
		b.WriteString(s.Label.Render("Content"))
		b.WriteString("\n")
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}
	b.WriteString(s.Label.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(doc.Summary)
	return b.String()
}

func (m Model) assistantView() string {
	resp := m.exchange.Response
	if m.exchange.Failed {
		resp = m.styles.Error.Render(resp)
	}
	return m.styles.Pane.Render(fmt.Sprintf("%s %s\n%s", m.styles.Label.Render("You:"), m.exchange.Prompt, resp))
}

func (m Model) footerView() string {
	var lines []string

	switch {
	case m.session.Upload.Status() == workflow.StatusBusy:
		lines = append(lines, m.spinner.View()+" Summarizing...")
	case m.session.Assistant.Status() == workflow.StatusBusy:
		lines = append(lines, m.spinner.View()+" Waiting for the assistant...")
	}

	switch m.mode {
	case modeUploadInput, modeAskInput:
		lines = append(lines, m.input.View())
	case modeConfirmDelete:
		lines = append(lines, promptDelete)
	case modeConfirmDeleteAll:
		lines = append(lines, promptDeleteAll)
	}

	if m.status != "" {
		if m.failed {
			lines = append(lines, m.styles.Error.Render(m.status))
		} else {
			lines = append(lines, m.styles.Success.Render(m.status))
		}
	}

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}
	lines = append(lines, m.styles.Help.Render(strings.Join(help, " • ")))

	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Package tui is the interactive front end: it polls the running search once
// per frame and lets the user page through the matches found so far.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/segmentio/asm/ascii"

	"github.com/mhr3/hexseek/internal/driver"
	"github.com/mhr3/hexseek/needle"
	"github.com/mhr3/hexseek/search"
)

// Restart opens the haystack again and starts a new search over it. Data is
// the haystack's byte view, used for previews. The previous search has already
// been stopped when Restart is called, and Restart may release the previous
// haystack whether or not it succeeds.
type Restart func() (s *search.Session, data []byte, err error)

// Config describes one interactive search.
type Config struct {
	Source         string
	Needle         needle.Owned
	Frame          time.Duration
	PageSize       int
	PreviewBytes   int
	ResultsPerTick int
	// Changes, when set, triggers Restart whenever it receives.
	Changes        <-chan struct{}
	Restart        Restart
}

type frameMsg time.Time

type changedMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the bubbletea model of a running search.
type Model struct {
	cfg     Config
	poller  *driver.Poller
	data    []byte
	spinner spinner.Model
	state   search.State
	cursor  int
	started time.Time
	elapsed time.Duration
	err     error
}

// New returns a model tracking s over data.
func New(cfg Config, s *search.Session, data []byte) *Model {
	if cfg.Frame <= 0 {
		cfg.Frame = time.Second / 30
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = statusStyle

	m := &Model{
		cfg:     cfg,
		poller:  driver.NewPoller(cfg.ResultsPerTick),
		spinner: sp,
	}
	m.track(s, data)
	return m
}

func (m *Model) track(s *search.Session, data []byte) {
	m.err = m.poller.Replace(s)
	m.data = data
	m.state = m.poller.State()
	m.cursor = 0
	m.started = time.Now()
	m.elapsed = 0
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.frame(), m.waitForChange())
}

func (m *Model) frame() tea.Cmd {
	return tea.Tick(m.cfg.Frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) waitForChange() tea.Cmd {
	if m.cfg.Changes == nil || m.cfg.Restart == nil {
		return nil
	}
	ch := m.cfg.Changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.poll()
		return m, m.frame()

	case changedMsg:
		// The old search must be gone before its haystack is reopened.
		_ = m.poller.Stop()
		s, data, err := m.cfg.Restart()
		if err != nil {
			// The old view may already be released.
			_ = m.poller.Replace(nil)
			m.data = nil
			m.cursor = 0
			m.err = err
			m.state = search.Finished
		} else {
			m.track(s, data)
		}
		return m, m.waitForChange()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) poll() {
	if m.state == search.Finished {
		return
	}
	_, m.state = m.poller.Tick()
	if m.state == search.Finished {
		m.elapsed = time.Since(m.started)
		if err := m.poller.Err(); err != nil {
			m.err = err
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.poller.Results().Len()
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		if err := m.poller.Stop(); err != nil && m.err == nil {
			m.err = err
		}
		return m, tea.Quit
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "pgup":
		m.cursor -= m.cfg.PageSize
	case "pgdown", " ":
		m.cursor += m.cfg.PageSize
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = n - 1
	}
	m.cursor = max(0, min(m.cursor, n-1))
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	n := m.poller.Results().Len()

	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		titleStyle.Render("hexseek"),
		m.cfg.Source,
		dimStyle.Render(fmt.Sprintf("%s (%d bytes)", m.cfg.Needle, m.cfg.Needle.Len())),
	)

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	case m.state == search.Finished:
		b.WriteString(statusStyle.Render(fmt.Sprintf("done: %d matches in %s", n, m.elapsed.Round(time.Millisecond))) + "\n")
	default:
		fmt.Fprintf(&b, "%s searching... %d matches\n", m.spinner.View(), n)
	}
	b.WriteString("\n")

	if n == 0 {
		b.WriteString(dimStyle.Render("No results found") + "\n")
	} else {
		first := m.cursor / m.cfg.PageSize * m.cfg.PageSize
		for i, off := range m.poller.Results().Page(first, m.cfg.PageSize) {
			row := fmt.Sprintf("%8d  0x%08X  %s", first+i, off, m.preview(off))
			if first+i == m.cursor {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("↑/↓ move  pgup/pgdn page  g/G first/last  q quit"))
	return b.String()
}

// preview renders the bytes at off as hex followed by their printable text.
func (m *Model) preview(off int) string {
	if m.cfg.PreviewBytes <= 0 || off >= len(m.data) {
		return ""
	}
	chunk := m.data[off:min(off+m.cfg.PreviewBytes, len(m.data))]

	var hex strings.Builder
	for i, c := range chunk {
		if i > 0 {
			hex.WriteByte(' ')
		}
		fmt.Fprintf(&hex, "%02X", c)
	}
	pad := strings.Repeat("   ", m.cfg.PreviewBytes-len(chunk))
	return hex.String() + pad + "  |" + printable(chunk) + "|"
}

func printable(b []byte) string {
	if ascii.ValidPrint(b) {
		return string(b)
	}
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 0x20 && c < 0x7f {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

// Cursor returns the index of the selected match.
func (m *Model) Cursor() int { return m.cursor }

// Err returns the first error seen by the model.
func (m *Model) Err() error { return m.err }

// Run shows the model on the terminal until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if serr := m.poller.Stop(); err == nil && m.err == nil {
		m.err = serr
	}
	if err != nil {
		return err
	}
	return m.Err()
}

// Package ui implements the interactive converter: HTML on the left,
// rsx on the right, reconverted on every edit.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/livefir/html2rsx"
	"github.com/livefir/html2rsx/internal/history"
)

type recorder interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
}

type pane int

const (
	inputPane pane = iota
	outputPane
)

const helpText = "tab: switch pane • ctrl+t: minify • ctrl+s: save to history • esc: quit"

type model struct {
	input  textarea.Model
	output viewport.Model

	focus  pane
	minify bool
	maxBuf int
	store  recorder

	report *html2rsx.Report
	err    error
	status string

	width, height int
}

func newModel(minify bool, maxBuf int, store recorder) model {
	input := textarea.New()
	input.Placeholder = "Paste HTML here..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.Focus()

	m := model{
		input:  input,
		output: viewport.New(0, 0),
		minify: minify,
		maxBuf: maxBuf,
		store:  store,
	}
	m.resize(80, 24)
	return m
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		case "ctrl+t":
			m.minify = !m.minify
			m.convert()
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == inputPane {
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.status = ""
			m.convert()
		}
	} else {
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}

func (m *model) toggleFocus() {
	if m.focus == inputPane {
		m.focus = outputPane
		m.input.Blur()
	} else {
		m.focus = inputPane
		m.input.Focus()
	}
}

// convert re-renders the current input into the output pane
func (m *model) convert() {
	report, err := html2rsx.ConvertReport(m.input.Value(),
		html2rsx.WithMinify(m.minify),
		html2rsx.WithMaxBuf(m.maxBuf),
	)
	m.err = err
	if err != nil {
		m.report = nil
		m.output.SetContent("")
		return
	}
	m.report = report
	m.output.SetContent(report.Output)
}

// save records the current conversion in the history store
func (m *model) save() {
	switch {
	case m.store == nil:
		m.status = "history is disabled"
	case m.report == nil:
		m.status = "nothing to save"
	default:
		id, err := m.store.Record(context.Background(), history.Entry{
			Source:   "tui",
			Input:    m.input.Value(),
			Output:   m.report.Output,
			Warnings: len(m.report.Warnings),
			Elements: m.report.Elements,
		})
		if err != nil {
			m.status = err.Error()
			return
		}
		m.status = fmt.Sprintf("saved as #%d", id)
	}
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height

	// Each pane loses 2 columns and 2 rows to its border; the title and
	// status lines take 2 more rows.
	paneWidth := max(width/2-2, 10)
	paneHeight := max(height-6, 3)

	m.input.SetWidth(paneWidth)
	m.input.SetHeight(paneHeight)
	m.output.Width = paneWidth
	m.output.Height = paneHeight
}

func (m model) View() string {
	left, right := paneStyle, paneStyle
	if m.focus == inputPane {
		left = focusedPaneStyle
	} else {
		right = focusedPaneStyle
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(m.input.View()),
		right.Render(m.output.View()),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("html2rsx"))
	b.WriteString("\n")
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(helpText))
	return b.String()
}

func (m model) statusLine() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}

	minify := "off"
	if m.minify {
		minify = "on"
	}

	line := fmt.Sprintf("minify %s", minify)
	if m.report != nil {
		line += fmt.Sprintf(" • %d elements • %s", m.report.Elements, m.report.Duration)
	}
	if m.status != "" {
		line += " • " + m.status
	}
	out := statusStyle.Render(line)

	if m.report != nil && len(m.report.Warnings) > 0 {
		out += " " + warningStyle.Render(fmt.Sprintf("%d warning(s): %s", len(m.report.Warnings), m.report.Warnings[0]))
	}
	return out
}

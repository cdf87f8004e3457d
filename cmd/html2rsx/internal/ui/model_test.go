package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/livefir/html2rsx/internal/history"
)

type memoryRecorder struct {
	entries []history.Entry
	err     error
}

func (r *memoryRecorder) Record(ctx context.Context, e history.Entry) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.entries = append(r.entries, e)
	return int64(len(r.entries)), nil
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("Expected model, got %T", next)
	}
	return mm
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestTypingConverts(t *testing.T) {
	m := newModel(false, 0, nil)
	m = typeText(t, m, `<p class="x">hi</p>`)

	if m.err != nil {
		t.Fatalf("Unexpected error: %v", m.err)
	}
	if m.report == nil {
		t.Fatal("Expected a report after typing")
	}
	expected := "p {\n    class: \"x\",\n    \"hi\"\n}\n"
	if m.report.Output != expected {
		t.Errorf("Expected %q, got %q", expected, m.report.Output)
	}
	if m.report.Elements != 1 {
		t.Errorf("Expected 1 element, got %d", m.report.Elements)
	}
}

func TestToggleMinify(t *testing.T) {
	m := newModel(false, 0, nil)
	m.input.SetValue("<div>\n  <p>Hi</p>\n</div>")
	m.convert()

	if !strings.Contains(m.report.Output, `"\n  "`) {
		t.Errorf("Expected whitespace text without minify, got %q", m.report.Output)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if !m.minify {
		t.Fatal("Expected minify to be enabled")
	}
	expected := "div {\n    p {\n        \"Hi\"\n    }\n}\n"
	if m.report.Output != expected {
		t.Errorf("Expected %q, got %q", expected, m.report.Output)
	}
}

func TestParseErrorShownInStatus(t *testing.T) {
	m := newModel(false, 16, nil)
	m = typeText(t, m, `<div class="`+strings.Repeat("a", 64)+`"></div>`)

	if m.err == nil {
		t.Fatal("Expected parse error")
	}
	if m.report != nil {
		t.Error("Expected no report on error")
	}
	if !strings.Contains(m.View(), "failed to parse html") {
		t.Errorf("Expected error in view, got:\n%s", m.View())
	}
}

func TestSaveToHistory(t *testing.T) {
	rec := &memoryRecorder{}
	m := newModel(false, 0, rec)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "nothing to save" {
		t.Errorf("Expected 'nothing to save', got %q", m.status)
	}

	m = typeText(t, m, "<br>")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "saved as #1" {
		t.Errorf("Expected 'saved as #1', got %q", m.status)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(rec.entries))
	}
	if rec.entries[0].Source != "tui" || rec.entries[0].Output != "br {}\n" {
		t.Errorf("Unexpected entry: %+v", rec.entries[0])
	}

	rec.err = errors.New("disk full")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "disk full" {
		t.Errorf("Expected error status, got %q", m.status)
	}
}

func TestSaveWithoutHistory(t *testing.T) {
	m := newModel(false, 0, nil)
	m = typeText(t, m, "<br>")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "history is disabled" {
		t.Errorf("Expected 'history is disabled', got %q", m.status)
	}
}

func TestFocusAndResize(t *testing.T) {
	m := newModel(false, 0, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != outputPane {
		t.Error("Expected focus on output pane")
	}
	if m.input.Focused() {
		t.Error("Expected input to be blurred")
	}

	// Typing while the output pane has focus leaves the input alone
	m = typeText(t, m, "<p>")
	if m.input.Value() != "" {
		t.Errorf("Expected empty input, got %q", m.input.Value())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != inputPane || !m.input.Focused() {
		t.Error("Expected focus back on input pane")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.output.Width != 58 || m.output.Height != 34 {
		t.Errorf("Expected output 58x34, got %dx%d", m.output.Width, m.output.Height)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(false, 0, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

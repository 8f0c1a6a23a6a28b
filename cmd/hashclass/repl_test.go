package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgomes/hashclass/hashclass"
)

func submitLine(t *testing.T, m replModel, line string) (replModel, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func lastEntry(t *testing.T, m replModel) transcriptEntry {
	t.Helper()
	if len(m.transcript) == 0 {
		t.Fatalf("expected a transcript entry")
	}
	return m.transcript[len(m.transcript)-1]
}

func TestQuitCommandReturnsQuit(t *testing.T) {
	m, cmd := submitLine(t, newREPLModel(), ":quit")
	if !m.quitting {
		t.Fatalf("quitting flag not set")
	}
	if m.input.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestHelpCommandTogglesPanel(t *testing.T) {
	m, cmd := submitLine(t, newREPLModel(), ":help")
	if cmd != nil {
		t.Fatalf("expected no command for :help")
	}
	if !m.showHelp || m.quitting {
		t.Fatalf("expected help panel shown without quitting")
	}
}

func TestUnknownCommandIsReported(t *testing.T) {
	m, _ := submitLine(t, newREPLModel(), ":frobnicate")
	entry := lastEntry(t, m)
	if !entry.isErr || !strings.Contains(entry.result, ":frobnicate") {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestBindingsPersistAcrossInputs(t *testing.T) {
	m := newREPLModel()
	m, _ = submitLine(t, m, "class Account { #balance = 0; deposit(n) { this.#balance += n; return this.#balance } }")
	if entry := lastEntry(t, m); entry.isErr {
		t.Fatalf("class declaration failed: %s", entry.result)
	}
	m, _ = submitLine(t, m, "const acct = new Account()")
	m, _ = submitLine(t, m, "acct.deposit(5)")
	m, _ = submitLine(t, m, "acct.deposit(7)")

	entry := lastEntry(t, m)
	if entry.isErr || entry.result != "12" {
		t.Fatalf("expected 12, got %#v", entry)
	}
	if got := m.globals["_"]; got.Kind() != hashclass.KindInt || got.Int() != 12 {
		t.Fatalf("expected _ to hold the last result, got %s", got)
	}
	if _, ok := m.globals["Account"]; !ok {
		t.Fatalf("expected Account binding to persist")
	}
}

func TestPrivateAccessErrorsAreShown(t *testing.T) {
	m := newREPLModel()
	m, _ = submitLine(t, m, "class A { #x = 1; static read(o) { return o.#x } }")
	m, _ = submitLine(t, m, "A.read({})")
	entry := lastEntry(t, m)
	if !entry.isErr || !strings.Contains(entry.result, "TypeError") {
		t.Fatalf("expected TypeError entry, got %#v", entry)
	}
}

func TestPrintOutputIsCaptured(t *testing.T) {
	m, _ := submitLine(t, newREPLModel(), `print("hi", 1)`)
	entry := lastEntry(t, m)
	if entry.output != "hi 1" || entry.result != "undefined" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestResetDropsBindings(t *testing.T) {
	m := newREPLModel()
	m, _ = submitLine(t, m, "let score = 42")
	if got := m.globals["score"]; got.Int() != 42 {
		t.Fatalf("expected score binding, got %s", got)
	}
	m, _ = submitLine(t, m, ":reset")
	if len(m.globals) != 0 {
		t.Fatalf("expected bindings cleared, got %d", len(m.globals))
	}
	m, _ = submitLine(t, m, "score")
	if entry := lastEntry(t, m); !entry.isErr || !strings.Contains(entry.result, "ReferenceError") {
		t.Fatalf("expected ReferenceError after reset, got %#v", entry)
	}
}

func TestRecallWalksSubmittedInputs(t *testing.T) {
	m := newREPLModel()
	m, _ = submitLine(t, m, "1")
	m, _ = submitLine(t, m, "2")

	up := func(m replModel) replModel {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		return model.(replModel)
	}
	down := func(m replModel) replModel {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		return model.(replModel)
	}

	m = up(m)
	if m.input.Value() != "2" {
		t.Fatalf("expected most recent input, got %q", m.input.Value())
	}
	m = up(m)
	if m.input.Value() != "1" {
		t.Fatalf("expected first input, got %q", m.input.Value())
	}
	m = down(m)
	m = down(m)
	if m.input.Value() != "" || m.recallIdx != -1 {
		t.Fatalf("expected recall reset, got %q (%d)", m.input.Value(), m.recallIdx)
	}
}

func TestCompletion(t *testing.T) {
	m := newREPLModel()
	m.globals["accountTotal"] = hashclass.NewInt(1)

	m.input.SetValue("acc")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	if m.input.Value() != "accountTotal" {
		t.Fatalf("expected completion, got %q", m.input.Value())
	}

	m.input.SetValue("new s")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	entry := lastEntry(t, m)
	for _, want := range []string{"static", "set", "super"} {
		if !strings.Contains(entry.result, want) {
			t.Fatalf("expected %q among completions %q", want, entry.result)
		}
	}
}

func TestViewRendersTranscript(t *testing.T) {
	m := newREPLModel()
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = submitLine(t, m, "1 + 2")
	m, _ = submitLine(t, m, ":vars")
	view := m.View()
	for _, want := range []string{"HashClass REPL", "1 + 2", "→ 3", "Bindings"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func acceptOnly(valid string) Validator {
	return func(path string) (string, error) {
		if path != valid {
			return "", fmt.Errorf("%q is not a directory", path)
		}
		return "/abs" + path, nil
	}
}

func typeText(m PromptModel, text string) PromptModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(PromptModel)
}

func press(m PromptModel, key tea.KeyType) (PromptModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(PromptModel), cmd
}

func TestPromptModelAccepts(t *testing.T) {
	m := NewPromptModel(acceptOnly("/inbox"))
	m = typeText(m, `"/inbox"`)

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected quit command after a valid path")
	}
	if m.Result() != "/abs/inbox" {
		t.Errorf("Result() = %q, want /abs/inbox", m.Result())
	}
	if m.Cancelled() {
		t.Error("model should not be cancelled")
	}
	if view := m.View(); !strings.Contains(view, "Folder selected") || !strings.Contains(view, "/abs/inbox") {
		t.Errorf("view does not confirm the accepted path:\n%s", view)
	}
}

func TestPromptModelRepromptsOnInvalid(t *testing.T) {
	m := NewPromptModel(acceptOnly("/inbox"))
	m = typeText(m, "/nope")

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("invalid path should not quit the prompt")
	}
	if m.Result() != "" {
		t.Errorf("Result() = %q, want empty", m.Result())
	}
	if !strings.Contains(m.View(), "not a directory") {
		t.Errorf("view does not show the validation error:\n%s", m.View())
	}

	m = typeText(m, "/inbox")
	m, _ = press(m, tea.KeyEnter)
	if m.Result() != "/abs/inbox" {
		t.Errorf("Result() after retry = %q, want /abs/inbox", m.Result())
	}
}

func TestPromptModelCancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := NewPromptModel(acceptOnly("/inbox"))
		m, cmd := press(m, key)
		if cmd == nil {
			t.Errorf("key %v: expected quit command", key)
		}
		if !m.Cancelled() {
			t.Errorf("key %v: model not cancelled", key)
		}
		if m.View() != "" {
			t.Errorf("key %v: view should be empty after cancel", key)
		}
	}
}

func TestLinePromptRetries(t *testing.T) {
	in := strings.NewReader("/wrong\n  '/inbox'  \n")
	var out strings.Builder

	got, err := LinePrompt(in, &out, acceptOnly("/inbox"))
	if err != nil {
		t.Fatalf("LinePrompt failed: %v", err)
	}
	if got != "/abs/inbox" {
		t.Errorf("LinePrompt() = %q, want /abs/inbox", got)
	}
	if strings.Count(out.String(), "Enter the folder") != 2 {
		t.Errorf("expected two prompts, got output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "please try again") {
		t.Errorf("retry message missing:\n%s", out.String())
	}
}

func TestLinePromptEOF(t *testing.T) {
	var out strings.Builder

	_, err := LinePrompt(strings.NewReader("/wrong\n"), &out, acceptOnly("/inbox"))
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled at EOF, got %v", err)
	}
}

package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todolist/internal/app"
	"github.com/Makepad-fr/todolist/internal/catalog"
	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/store"
)

func newTestModel(t *testing.T, content string) (Model, *app.Controller, *store.Store) {
	t.Helper()
	cat, err := catalog.Load(filepath.Join("..", "catalog", "testdata", "translations.toml"))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	path := filepath.Join(t.TempDir(), "todo_list.csv")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	st := store.New(path)
	ctrl, err := app.New(st, cat, "en", logging.Discard())
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	m := NewModel(ctrl, ThemeByName("mono"))
	return send(m, tea.WindowSizeMsg{Width: 80, Height: 24}), ctrl, st
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestAddToggleDelete(t *testing.T) {
	m, ctrl, st := newTestModel(t, "")

	m = send(m, runes("a"), runes("Buy milk"), enter)
	if got := ctrl.Items(); !model.Equal(got, []model.Item{{Title: "Buy milk"}}) {
		t.Fatalf("after add: %#v", got)
	}
	if m.mode != modeList {
		t.Fatalf("mode = %v after enter", m.mode)
	}

	m = send(m, space)
	if got := ctrl.Items(); !model.Equal(got, []model.Item{{Title: "Buy milk", Done: true}}) {
		t.Fatalf("after toggle: %#v", got)
	}
	if !strings.Contains(m.View(), "[x] Buy milk") {
		t.Fatalf("view missing done row:\n%s", m.View())
	}

	m = send(m, runes("d"))
	if got := ctrl.Items(); len(got) != 0 {
		t.Fatalf("after delete: %#v", got)
	}
	onDisk, err := st.Load()
	if err != nil || len(onDisk) != 0 {
		t.Fatalf("disk = %#v, %v", onDisk, err)
	}
	if len(m.list.Items()) != 0 {
		t.Fatalf("list still has %d items", len(m.list.Items()))
	}
}

func TestAddEscapeAndBlank(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "")
	m = send(m, runes("a"), runes("draft"), esc)
	m = send(m, runes("a"), runes("   "), enter)
	if got := ctrl.Items(); len(got) != 0 {
		t.Fatalf("items = %#v, want none", got)
	}
	if m.status != "" {
		t.Fatalf("status = %q, blank titles are silent", m.status)
	}
}

func TestToggleFollowsCursor(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "Write report,False\nPay bills,True\n")
	m = send(m, down, space)
	want := []model.Item{{Title: "Write report"}, {Title: "Pay bills"}}
	if got := ctrl.Items(); !model.Equal(got, want) {
		t.Fatalf("items = %#v, want %#v", got, want)
	}
	if m.list.Index() != 1 {
		t.Fatalf("cursor = %d, want 1", m.list.Index())
	}
}

func TestToggleOnEmptyList(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "")
	m = send(m, space, runes("d"))
	if len(ctrl.Items()) != 0 || m.status != "" {
		t.Fatalf("items = %#v, status = %q", ctrl.Items(), m.status)
	}
	if !strings.Contains(m.View(), "Nothing to do") {
		t.Fatalf("empty view:\n%s", m.View())
	}
}

func TestSwitchLocaleFromMenu(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "Write report,False\nPay bills,True\n")
	if !strings.Contains(m.View(), "To-Do List") {
		t.Fatalf("en view:\n%s", m.View())
	}
	m = send(m, runes("l"))
	if m.mode != modeLocale {
		t.Fatalf("mode = %v, want locale menu", m.mode)
	}
	if v := m.View(); !strings.Contains(v, "中文") || !strings.Contains(v, "English") {
		t.Fatalf("menu view:\n%s", v)
	}
	// en is second and active; move up to zh.
	m = send(m, tea.KeyMsg{Type: tea.KeyUp}, enter)
	if ctrl.Locale() != "zh" {
		t.Fatalf("locale = %q, want zh", ctrl.Locale())
	}
	if !strings.Contains(m.View(), "待办事项") {
		t.Fatalf("zh view:\n%s", m.View())
	}
	want := []model.Item{{Title: "Write report"}, {Title: "Pay bills", Done: true}}
	if got := ctrl.Items(); !model.Equal(got, want) {
		t.Fatalf("items changed by locale switch: %#v", got)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, "")
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestWriteErrorShownInStatus(t *testing.T) {
	cat, err := catalog.Load(filepath.Join("..", "catalog", "testdata", "translations.toml"))
	if err != nil {
		t.Fatal(err)
	}
	st := store.New(filepath.Join(t.TempDir(), "missing", "todo_list.csv"))
	ctrl, err := app.New(st, cat, "en", logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	m := send(NewModel(ctrl, ThemeByName("mono")), runes("a"), runes("x"), enter)
	if !strings.HasPrefix(m.status, "Save failed: ") {
		t.Fatalf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), "Save failed") {
		t.Fatalf("view:\n%s", m.View())
	}
}

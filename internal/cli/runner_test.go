package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Makepad-fr/todolist/internal/app"
	"github.com/Makepad-fr/todolist/internal/ui"
)

type harness struct {
	t        *testing.T
	file     string
	catalog  string
	launched bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	catalog, err := filepath.Abs(filepath.Join("..", "catalog", "testdata", "translations.toml"))
	if err != nil {
		t.Fatal(err)
	}
	return &harness{t: t, file: filepath.Join(t.TempDir(), "todo_list.csv"), catalog: catalog}
}

func (h *harness) run(args ...string) (code int, stdout, stderr string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"-file", h.file, "-catalog", h.catalog, "-lang", "en", "-theme", "mono"}, args...)
	code = Run(full, Options{
		Stdout: &out,
		Stderr: &errOut,
		DotEnv: []string{filepath.Join(h.t.TempDir(), "none.env")},
		Interactive: func(*app.Controller, ui.Theme) error {
			h.launched = true
			return nil
		},
	})
	return code, out.String(), errOut.String()
}

func (h *harness) contents() string {
	h.t.Helper()
	b, err := os.ReadFile(h.file)
	if err != nil {
		h.t.Fatal(err)
	}
	return string(b)
}

func TestAddDoneRm(t *testing.T) {
	h := newHarness(t)

	if code, out, errOut := h.run("add", "Buy", "milk"); code != ExitOK {
		t.Fatalf("add: code %d, stderr %q", code, errOut)
	} else if !strings.Contains(out, "Buy milk") {
		t.Errorf("add stdout = %q", out)
	}
	if got := h.contents(); got != "Buy milk,False\n" {
		t.Fatalf("file after add = %q", got)
	}

	if code, _, errOut := h.run("done", "1"); code != ExitOK {
		t.Fatalf("done: code %d, stderr %q", code, errOut)
	}
	if got := h.contents(); got != "Buy milk,True\n" {
		t.Fatalf("file after done = %q", got)
	}

	code, out, _ := h.run("ls")
	if code != ExitOK {
		t.Fatalf("ls: code %d", code)
	}
	for _, want := range []string{"To-Do List", "[x] Buy milk", "1/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("ls output missing %q:\n%s", want, out)
		}
	}

	if code, _, errOut := h.run("rm", "1"); code != ExitOK {
		t.Fatalf("rm: code %d, stderr %q", code, errOut)
	}
	if got := h.contents(); got != "" {
		t.Fatalf("file after rm = %q", got)
	}
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add without title", []string{"add"}, "usage: todo add"},
		{"blank title", []string{"add", "  "}, "empty title"},
		{"done without index", []string{"done"}, "usage: todo done"},
		{"rm not a number", []string{"rm", "x"}, "not a number"},
		{"done out of range", []string{"done", "3"}, "index out of range"},
		{"unknown subcommand", []string{"frobnicate"}, "unknown subcommand"},
		{"unknown flag", []string{"-nope"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := h.run(tt.args...)
			if code != ExitUsage {
				t.Fatalf("code = %d, want %d", code, ExitUsage)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("stderr %q missing %q", errOut, tt.want)
			}
		})
	}
}

func TestMissingCatalogIsFatal(t *testing.T) {
	h := newHarness(t)
	h.catalog = filepath.Join(t.TempDir(), "missing.toml")
	code, _, errOut := h.run("ls")
	if code != ExitError {
		t.Fatalf("code = %d, want %d", code, ExitError)
	}
	if !strings.Contains(errOut, "load catalog") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestCorruptItemFile(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.file, []byte("a,False\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := h.run("ls")
	if code != ExitError {
		t.Fatalf("code = %d, want %d", code, ExitError)
	}
	if !strings.Contains(errOut, ":2:") {
		t.Errorf("stderr = %q, want line number", errOut)
	}
}

func TestDefaultLaunchesUI(t *testing.T) {
	h := newHarness(t)
	if code, _, _ := h.run(); code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	if !h.launched {
		t.Fatal("interactive UI not started")
	}
}

func TestLangs(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("langs")
	if code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("langs output:\n%s", out)
	}
	if !strings.Contains(lines[0], "zh") || !strings.Contains(lines[0], "中文") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "*") || !strings.Contains(lines[1], "English") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestHelp(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("help")
	if code != ExitOK || !strings.Contains(out, "Subcommands:") {
		t.Fatalf("help: code %d, out %q", code, out)
	}
}

func TestListGrouped(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.file, []byte("Write report,False\nPay bills,True\nCall mom,False\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut := h.run("ls", "-group")
	if code != ExitOK {
		t.Fatalf("code = %d, stderr %q", code, errOut)
	}
	pending := strings.Index(out, "Pending")
	done := strings.Index(out, "Done")
	paid := strings.Index(out, " 2. [x] Pay bills")
	call := strings.Index(out, " 3. [ ] Call mom")
	if pending < 0 || done < 0 || paid < 0 || call < 0 {
		t.Fatalf("grouped output:\n%s", out)
	}
	if !(pending < call && call < done && done < paid) {
		t.Fatalf("sections out of order:\n%s", out)
	}

	if code, _, errOut := h.run("ls", "extra"); code != ExitUsage || !strings.Contains(errOut, "usage: todo ls") {
		t.Fatalf("ls extra: code %d, stderr %q", code, errOut)
	}
}

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Makepad-fr/todolist/internal/app"
	"github.com/Makepad-fr/todolist/internal/catalog"
	"github.com/Makepad-fr/todolist/internal/config"
	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/store"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options wires the process streams; zero values mean os.Stdout/os.Stderr.
type Options struct {
	Stdout, Stderr io.Writer
	DotEnv         []string // .env files to read; none means ./.env
	// Interactive runs the full-screen UI; replaced in tests.
	Interactive func(*app.Controller, ui.Theme) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Interactive == nil {
		o.Interactive = func(c *app.Controller, t ui.Theme) error { return ui.Run(c, t) }
	}
}

// Run parses root flags, dispatches the subcommand and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	theme := ui.ThemeByName("")

	cfg, rest, err := config.Load(args, opt.DotEnv...)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			PrintHelp(opt.Stdout)
			return ExitOK
		}
		ui.Fail(opt.Stderr, theme, err.Error())
		return ExitUsage
	}
	theme = ui.ThemeByName(cfg.Theme)

	cmd, a := "ui", []string(nil)
	if len(rest) > 0 {
		cmd, a = rest[0], rest[1:]
	}
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return ExitOK
	case "ui", "ls", "add", "done", "rm", "langs":
	default:
		ui.Fail(opt.Stderr, theme, "unknown subcommand: "+cmd)
		fmt.Fprintln(opt.Stderr)
		PrintHelp(opt.Stderr)
		return ExitUsage
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Quiet: cmd == "ui",
	})
	if err != nil {
		ui.Fail(opt.Stderr, theme, err.Error())
		return ExitError
	}
	defer closeLog()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Error("catalog", "err", err)
		ui.Fail(opt.Stderr, theme, err.Error())
		return ExitError
	}
	ctrl, err := app.New(store.New(cfg.ItemFile), cat, cfg.Locale, logger)
	if err != nil {
		ui.Fail(opt.Stderr, theme, "load: "+err.Error())
		return ExitError
	}

	r := runner{opt: opt, theme: theme, ctrl: ctrl}
	switch cmd {
	case "ui":
		return r.doUI()
	case "ls":
		fs := flag.NewFlagSet("ls", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		group := fs.Bool("group", false, "group output by pending/done")
		if err := fs.Parse(a); err != nil || fs.NArg() > 0 {
			ui.Fail(opt.Stderr, theme, "usage: todo ls [-group]")
			return ExitUsage
		}
		return r.doList(*group)
	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Stderr, theme, "usage: todo add <title...>")
			return ExitUsage
		}
		return r.doAdd(strings.Join(a, " "))
	case "done", "rm":
		if len(a) != 1 {
			ui.Fail(opt.Stderr, theme, "usage: todo "+cmd+" <index>")
			return ExitUsage
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail(opt.Stderr, theme, cmd+": not a number: "+a[0])
			return ExitUsage
		}
		if cmd == "done" {
			return r.doToggle(n)
		}
		return r.doRemove(n)
	}
	return r.doLangs()
}

// PrintHelp writes usage to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a tiny to-do list

Usage:
  todo [flags] [subcommand] [args]

Subcommands:
  ui                 Full-screen list (default)
  ls [-group]        Print items, optionally grouped by pending/done
  add <title...>     Add a new item (title can be multiple words)
  done <index>       Toggle completion for item at 1-based index
  rm <index>         Remove item at 1-based index
  langs              List available display languages

Flags:
  -file PATH         item file, .csv or .json (TODO_FILE, default todo_list.csv)
  -catalog PATH      locale file, .toml or .xml (TODO_CATALOG, default translations.toml)
  -lang CODE         display language (TODO_LOCALE, default zh)
  -log-level LEVEL   debug|info|warn|error (TODO_LOG_LEVEL)
  -log-file PATH     append logs here (TODO_LOG_FILE)
  -theme NAME        classic|neon|mono (TODO_THEME)

Examples:
  todo add "Buy milk"
  todo -lang en ls
  todo done 2
  todo rm 3
`)
}

type runner struct {
	opt   Options
	theme ui.Theme
	ctrl  *app.Controller
}

func (r runner) doUI() int {
	if err := r.opt.Interactive(r.ctrl, r.theme); err != nil {
		ui.Fail(r.opt.Stderr, r.theme, "tui: "+err.Error())
		return ExitError
	}
	return ExitOK
}

func (r runner) doList(group bool) int {
	ui.Panel(r.opt.Stdout, r.theme, ui.ListLines(r.theme, r.ctrl.Labels(), r.ctrl.Rows(), group))
	return ExitOK
}

func (r runner) doAdd(title string) int {
	if store.Validate(title) != nil {
		ui.Fail(r.opt.Stderr, r.theme, "add: empty title")
		return ExitUsage
	}
	if err := r.ctrl.Add(title); err != nil {
		ui.Fail(r.opt.Stderr, r.theme, "save: "+err.Error())
		return ExitError
	}
	ui.OK(r.opt.Stdout, r.theme, r.ctrl.Label(catalog.KeyAdd)+": "+strings.TrimSpace(title))
	return ExitOK
}

// index converts a 1-based user index, reporting out-of-range as usage.
func (r runner) index(userIndex int) (int, bool) {
	n := len(r.ctrl.Items())
	if userIndex < 1 || userIndex > n {
		ui.Fail(r.opt.Stderr, r.theme, fmt.Sprintf("index out of range: have %d, got %d", n, userIndex))
		fmt.Fprintln(r.opt.Stderr, r.theme.Muted.Render("Hint: run `todo ls` to see valid indexes"))
		return 0, false
	}
	return userIndex - 1, true
}

func (r runner) doToggle(userIndex int) int {
	idx, ok := r.index(userIndex)
	if !ok {
		return ExitUsage
	}
	title := r.ctrl.Items()[idx].Title
	if err := r.ctrl.ToggleSelected(idx); err != nil {
		ui.Fail(r.opt.Stderr, r.theme, "save: "+err.Error())
		return ExitError
	}
	ui.OK(r.opt.Stdout, r.theme, r.ctrl.Label(catalog.KeyComplete)+": "+title)
	return ExitOK
}

func (r runner) doRemove(userIndex int) int {
	idx, ok := r.index(userIndex)
	if !ok {
		return ExitUsage
	}
	title := r.ctrl.Items()[idx].Title
	if err := r.ctrl.DeleteSelected(idx); err != nil {
		ui.Fail(r.opt.Stderr, r.theme, "save: "+err.Error())
		return ExitError
	}
	ui.OK(r.opt.Stdout, r.theme, r.ctrl.Label(catalog.KeyDelete)+": "+title)
	return ExitOK
}

func (r runner) doLangs() int {
	for _, e := range r.ctrl.LocaleMenu() {
		mark := " "
		if e.Active {
			mark = "*"
		}
		fmt.Fprintf(r.opt.Stdout, "%s %-6s %s\n", mark, e.Code, e.Name)
	}
	return ExitOK
}

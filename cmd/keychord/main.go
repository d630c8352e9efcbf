// Package main is an interactive demo for the keychord binder: it
// binds a handful of sequences to a terminal surface and shows the
// live sequence buffer and every command that fires.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kstrand/keychord/internal/host"
	"github.com/kstrand/keychord/internal/input"
	"github.com/kstrand/keychord/internal/input/keymap"
	"github.com/kstrand/keychord/internal/logging"
	luascripts "github.com/kstrand/keychord/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	bindings    string
	script      string
	flush       time.Duration
	logFile     string
	logLevel    string
	showVersion bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.bindings, "bindings", "", "keymap JSON file to load")
	flag.StringVar(&opts.script, "script", "", "Lua command script to load")
	flag.DurationVar(&opts.flush, "flush", input.DefaultFlushInterval, "ambiguity flush interval")
	flag.StringVar(&opts.logFile, "logfile", "", "write debug log to this file")
	flag.StringVar(&opts.logLevel, "loglevel", "info", "log level (debug, info, warn, error)")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.Parse()
	return opts
}

func run() int {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("keychord %s (%s)\n", version, commit)
		return 0
	}

	logger := logging.Nop
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = logging.New(logging.Config{
			Level:  logging.ParseLevel(opts.logLevel),
			Output: f,
			Prefix: "keychord",
		})
	}

	binder := input.New(input.Config{FlushInterval: opts.flush}, logger)
	defer binder.Close()

	term, err := host.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing terminal: %v\n", err)
		return 1
	}
	defer term.Fini()

	ui := newDemoUI(term.Screen())
	quit := make(chan struct{})
	var quitOnce sync.Once
	stop := func() { quitOnce.Do(func() { close(quit) }) }

	if err := loadBindings(binder, ui, opts, stop); err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	binder.OnSequenceChange(func(buffer string) {
		ui.setBuffer(buffer)
	})
	binder.AttachSurface(term)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		stop()
	}()

	go term.Run()
	defer term.Stop()

	ui.render()
	for {
		select {
		case <-quit:
			return 0
		case <-ui.updates:
			ui.render()
		}
	}
}

// loadBindings wires the demo's bindings: from a Lua script plus
// keymap file when given, otherwise a built-in set.
func loadBindings(binder *input.Binder, ui *demoUI, opts options, stop func()) error {
	table := binder.Table()

	if opts.script != "" {
		scripts := luascripts.New(logging.Nop)
		if err := scripts.DoFile(opts.script); err != nil {
			return err
		}
		if opts.bindings == "" {
			return fmt.Errorf("-script requires -bindings to map sequences to actions")
		}
		km, err := keymap.LoadFile(opts.bindings)
		if err != nil {
			return err
		}
		if report := km.Apply(table, scripts); !report.Empty() {
			return fmt.Errorf("loading bindings: %v", report)
		}
	} else {
		report := binder.BindAll(map[string]keymap.Command{
			"gg":     ui.announce("top of file"),
			"G":      ui.announce("bottom of file"),
			"d":      ui.announce("delete (pending motion)"),
			"dd":     ui.announce("delete line"),
			"<C-x>s": ui.announce("save"),
		})
		if !report.Empty() {
			return fmt.Errorf("default bindings: %v", report)
		}
	}

	// q always quits the demo.
	if report := binder.Bind("q", func(*host.Event) error {
		stop()
		return nil
	}); !report.Empty() {
		return fmt.Errorf("quit binding: %v", report)
	}

	return nil
}

// demoUI draws the buffer and fired-command log on the raw screen.
type demoUI struct {
	mu      sync.Mutex
	screen  tcell.Screen
	buffer  string
	fired   []string
	updates chan struct{}
}

func newDemoUI(screen tcell.Screen) *demoUI {
	return &demoUI{
		screen:  screen,
		updates: make(chan struct{}, 8),
	}
}

// announce returns a command that records its message in the log pane.
func (u *demoUI) announce(msg string) keymap.Command {
	return func(*host.Event) error {
		u.mu.Lock()
		u.fired = append(u.fired, msg)
		if len(u.fired) > 10 {
			u.fired = u.fired[len(u.fired)-10:]
		}
		u.mu.Unlock()
		u.poke()
		return nil
	}
}

func (u *demoUI) setBuffer(buffer string) {
	u.mu.Lock()
	u.buffer = buffer
	u.mu.Unlock()
	u.poke()
}

func (u *demoUI) poke() {
	select {
	case u.updates <- struct{}{}:
	default:
	}
}

func (u *demoUI) render() {
	u.mu.Lock()
	buffer := u.buffer
	fired := append([]string(nil), u.fired...)
	u.mu.Unlock()

	style := tcell.StyleDefault
	u.screen.Clear()
	drawText(u.screen, 0, 0, style.Bold(true), "keychord demo (q to quit)")
	drawText(u.screen, 0, 2, style, fmt.Sprintf("buffer: %s", buffer))
	drawText(u.screen, 0, 4, style, "fired:")
	for i, msg := range fired {
		drawText(u.screen, 2, 5+i, style, msg)
	}
	u.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

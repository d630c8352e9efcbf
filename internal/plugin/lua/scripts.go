// Package lua lets binding commands be written in Lua scripts.
//
// A script registers named commands through the keychord module:
//
//	keychord.command("line.delete", function(ev)
//	    -- ev.key is the canonical token that completed the match
//	end)
//
// Scripts implements keymap.Resolver, so keymap files can name
// Lua-registered actions directly.
package lua

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/kstrand/keychord/internal/host"
	"github.com/kstrand/keychord/internal/input/keymap"
	"github.com/kstrand/keychord/internal/logging"
)

// ErrClosed is returned when using a closed script host.
var ErrClosed = errors.New("lua scripts closed")

// Scripts hosts a Lua state and the commands scripts registered in it.
//
// gopher-lua's LState is not goroutine-safe; all execution is
// serialized through the Scripts mutex.
type Scripts struct {
	mu       sync.Mutex
	L        *lua.LState
	commands map[string]*lua.LFunction
	log      *logging.Logger
	closed   bool
}

// New creates a script host. A nil logger disables logging.
func New(logger *logging.Logger) *Scripts {
	if logger == nil {
		logger = logging.Nop
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	s := &Scripts{
		L:        L,
		commands: make(map[string]*lua.LFunction),
		log:      logger.WithComponent("lua"),
	}
	s.installModule()
	return s
}

// openSafeLibraries opens only side-effect-free standard libraries.
// io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installModule exposes the keychord table to scripts.
func (s *Scripts) installModule() {
	mod := s.L.NewTable()
	s.L.SetField(mod, "command", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)
		s.commands[name] = fn
		return 0
	}))
	s.L.SetGlobal("keychord", mod)
}

// DoFile executes a Lua script file.
func (s *Scripts) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.L.DoFile(path); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}

// DoString executes Lua source.
func (s *Scripts) DoString(src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.L.DoString(src)
}

// Commands returns the names of all registered commands.
func (s *Scripts) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	return names
}

// Resolve implements keymap.Resolver: registered command names map to
// commands that call back into the script.
func (s *Scripts) Resolve(action string) (keymap.Command, bool) {
	s.mu.Lock()
	fn, ok := s.commands[action]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	return func(ev *host.Event) error {
		return s.call(fn, ev)
	}, true
}

// call invokes a Lua command function with an event table.
func (s *Scripts) call(fn *lua.LFunction, ev *host.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.L.Push(fn)
	s.L.Push(s.eventTable(ev))
	if err := s.L.PCall(1, 0, nil); err != nil {
		return fmt.Errorf("lua command: %w", err)
	}
	return nil
}

// eventTable builds the Lua view of a host event.
func (s *Scripts) eventTable(ev *host.Event) *lua.LTable {
	tbl := s.L.NewTable()
	if ev == nil {
		return tbl
	}
	s.L.SetField(tbl, "key", lua.LString(ev.Key.Canonical()))
	s.L.SetField(tbl, "trusted", lua.LBool(ev.Trusted))
	s.L.SetField(tbl, "prevent_default", s.L.NewFunction(func(L *lua.LState) int {
		ev.PreventDefault()
		return 0
	}))
	s.L.SetField(tbl, "stop_propagation", s.L.NewFunction(func(L *lua.LState) int {
		ev.StopPropagation()
		return 0
	}))
	return tbl
}

// Close releases the Lua state.
func (s *Scripts) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

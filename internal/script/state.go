// Package script runs sandboxed Lua edit scripts against a document.
//
// Scripts see a single global table, doc, whose functions edit and inspect
// the document. Offsets are 0-based character offsets, matching the rope.
//
//	doc.insert(0, "Hello")
//	doc.replace(0, 1, "J")
//	print(doc.text(), doc.len())
package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ropekit/internal/document"
	"github.com/dshills/ropekit/internal/logging"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// State wraps a gopher-lua state bound to one document.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes runs.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	doc     *document.Document
	timeout time.Duration
	out     io.Writer
	log     *slog.Logger
	closed  bool
}

// Option configures a State.
type Option func(*State)

// WithTimeout sets the per-run timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// WithOutput sets the destination of the print function.
func WithOutput(w io.Writer) Option {
	return func(s *State) {
		s.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		s.log = l
	}
}

// NewState creates a sandboxed Lua state editing doc.
func NewState(doc *document.Document, opts ...Option) *State {
	s := &State{
		doc:     doc,
		timeout: DefaultTimeout,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.WithComponent(s.log, "script")

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.installSandbox()
	s.L.SetGlobal("doc", s.L.SetFuncs(s.L.NewTable(), docFuncs(doc)))
	return s
}

// openSafeLibraries opens only the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes loaders and redirects print.
func (s *State) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// Document returns the document scripts edit.
func (s *State) Document() *document.Document {
	return s.doc
}

// Run executes source under the given script name.
// Execution blocks until the script returns, fails, or ctx is done.
func (s *State) Run(ctx context.Context, name, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &ScriptError{Script: name, Err: ErrStateClosed}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	start := time.Now()
	before := s.doc.Version()
	s.log.Debug("script started", "script", name)

	fn, err := s.L.Load(strings.NewReader(source), name)
	if err != nil {
		return &ScriptError{Script: name, Err: err}
	}

	if err := s.call(fn); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		s.log.Debug("script failed", "script", name, "error", err)
		return &ScriptError{Script: name, Err: err}
	}

	s.log.Debug("script finished",
		"script", name,
		"edits", s.doc.Version()-before,
		"duration", time.Since(start))
	return nil
}

// RunFile reads and executes the script at path.
func (s *State) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ScriptError{Script: filepath.Base(path), Err: err}
	}
	return s.Run(ctx, filepath.Base(path), string(data))
}

// call runs fn with panic recovery.
func (s *State) call(fn *lua.LFunction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	s.L.Push(fn)
	return s.L.PCall(0, 0, nil)
}

// Close releases the Lua state. Further runs return ErrStateClosed.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}

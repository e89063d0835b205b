package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ropekit/internal/document"
	"github.com/dshills/ropekit/internal/engine/rope"
)

func newTestState(t *testing.T, text string, opts ...Option) (*State, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	doc := document.New("test", rope.FromString(text))
	s := NewState(doc, append([]Option{WithOutput(&out)}, opts...)...)
	t.Cleanup(s.Close)
	return s, &out
}

func TestRunEditsDocument(t *testing.T) {
	s, out := newTestState(t, "test")

	err := s.Run(context.Background(), "edit.lua", `
		doc.delete(1, 3)
		doc.insert(2, "abc")
		print(doc.text(), doc.len(), doc.version())
	`)
	require.NoError(t, err)
	assert.Equal(t, "ttabc", s.Document().Text())
	assert.Equal(t, "ttabc\t5\t2\n", out.String())
}

func TestRunInspectFunctions(t *testing.T) {
	s, out := newTestState(t, "")

	err := s.Run(context.Background(), "inspect.lua", `
		for i = 1, 16 do
			doc.insert(doc.len(), "ab")
		end
		local before = doc.height()
		doc.balance()
		print(doc.balanced(), doc.height() < before, doc.slice(2, 6))
		doc.replace(0, 2, "XY")
		doc.rebalance()
		print(doc.slice(0, 4))
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\ttrue\tabab\nXYab\n", out.String())
}

func TestRunEditErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"insert past end", `doc.insert(10, "x")`},
		{"inverted delete", `doc.delete(2, 1)`},
		{"replace out of range", `doc.replace(0, 9, "x")`},
		{"slice out of range", `doc.slice(-1, 2)`},
		{"bad argument", `doc.insert("x", "y")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestState(t, "abc")
			err := s.Run(context.Background(), "bad.lua", tt.source)
			require.Error(t, err)

			var scriptErr *ScriptError
			require.ErrorAs(t, err, &scriptErr)
			assert.Equal(t, "bad.lua", scriptErr.Script)
			assert.Equal(t, "abc", s.Document().Text())
		})
	}
}

func TestRunPcallRecoversEditError(t *testing.T) {
	s, out := newTestState(t, "abc")

	err := s.Run(context.Background(), "pcall.lua", `
		local ok, msg = pcall(doc.insert, 99, "x")
		print(ok, string.find(msg, "not in", 1, true) ~= nil)
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\ttrue\n", out.String())
}

func TestRunSyntaxError(t *testing.T) {
	s, _ := newTestState(t, "")
	err := s.Run(context.Background(), "syntax.lua", `doc.insert(0,`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax.lua")
}

func TestSandbox(t *testing.T) {
	s, out := newTestState(t, "")

	err := s.Run(context.Background(), "sandbox.lua", `
		print(io == nil, os == nil, debug == nil, package == nil)
		print(dofile == nil, loadfile == nil, load == nil, require == nil)
		print(type(string.upper), type(table.concat), type(math.max))
	`)
	require.NoError(t, err)
	assert.Equal(t,
		"true\ttrue\ttrue\ttrue\ntrue\ttrue\ttrue\ttrue\nfunction\tfunction\tfunction\n",
		out.String())
}

func TestRunTimeout(t *testing.T) {
	s, _ := newTestState(t, "", WithTimeout(50*time.Millisecond))

	start := time.Now()
	err := s.Run(context.Background(), "spin.lua", `while true do end`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)

	// The state stays usable after an interrupted run.
	require.NoError(t, s.Run(context.Background(), "after.lua", `doc.insert(0, "ok")`))
	assert.Equal(t, "ok", s.Document().Text())
}

func TestRunCancelledContext(t *testing.T) {
	s, _ := newTestState(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, "cancelled.lua", `while true do end`)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunFile(t *testing.T) {
	s, _ := newTestState(t, "world")
	path := filepath.Join(t.TempDir(), "greet.lua")
	require.NoError(t, os.WriteFile(path, []byte(`doc.insert(0, "hello ")`), 0o644))

	require.NoError(t, s.RunFile(context.Background(), path))
	assert.Equal(t, "hello world", s.Document().Text())

	err := s.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	var scriptErr *ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "missing.lua", scriptErr.Script)
}

func TestClosedState(t *testing.T) {
	s, _ := newTestState(t, "")
	s.Close()
	s.Close()

	err := s.Run(context.Background(), "late.lua", `doc.insert(0, "x")`)
	assert.True(t, errors.Is(err, ErrStateClosed))
}

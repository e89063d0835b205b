package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ropekit/internal/engine/rope"
	"github.com/dshills/ropekit/internal/structured"
)

// isolate runs the test in an empty working directory and home so no
// user config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeRope(t *testing.T, dir, name string, r rope.Rope) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := structured.FormatFromPath(path)
	require.NoError(t, err)
	require.NoError(t, structured.WriteFile(path, f, r))
	return path
}

func decodeText(t *testing.T, out string) string {
	t.Helper()
	r, err := structured.Load(strings.NewReader(out), structured.JSON)
	require.NoError(t, err)
	return r.String()
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "ropekit 1.2.3 (commit: abc123, built: 2026-01-01)\n", out)
}

func TestImportAndRender(t *testing.T) {
	dir := isolate(t)
	text := "First line\nSecond line\nThird line is a little longer\n"
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte(text), 0o644))

	out, _, err := execute(t, "", "import", src, "--chunk-size", "8")
	require.NoError(t, err)
	assert.Equal(t, text, decodeText(t, out))

	dst := filepath.Join(dir, "notes.yaml")
	_, _, err = execute(t, "", "import", src, "-o", dst)
	require.NoError(t, err)

	out, _, err = execute(t, "", "render", dst)
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestImportFromStdin(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "héllo wörld", "import", "-", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: leaf")

	r, err := structured.Load(strings.NewReader(out), structured.YAML)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", r.String())
}

func TestRenderFromStdin(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, `{"kind":"branch","left":{"kind":"leaf","text":"ab"},"right":{"kind":"leaf","text":"cd"}}`, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "abcd", out)
}

func TestInsertAndDelete(t *testing.T) {
	dir := isolate(t)
	path := writeRope(t, dir, "doc.json", rope.Build("hello world", 8))

	out, _, err := execute(t, "", "insert", path, "5", ",")
	require.NoError(t, err)
	assert.Equal(t, "hello, world", decodeText(t, out))

	out, _, err = execute(t, "", "delete", path, "0", "6")
	require.NoError(t, err)
	assert.Equal(t, "world", decodeText(t, out))

	out, _, err = execute(t, "", "insert", path, "5", ",", "--diff")
	require.NoError(t, err)
	assert.Equal(t, "hello{+,+} world\n", out)

	out, _, err = execute(t, "", "delete", path, "0", "6", "--diff")
	require.NoError(t, err)
	assert.Equal(t, "[-hello -]world\n", out)
}

func TestEditErrors(t *testing.T) {
	dir := isolate(t)
	path := writeRope(t, dir, "doc.json", rope.FromString("abc"))

	_, _, err := execute(t, "", "delete", path, "0", "99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, rope.ErrOutOfRange))

	_, _, err = execute(t, "", "insert", path, "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid offset")

	_, _, err = execute(t, "", "insert", path, "1")
	assert.Error(t, err)

	_, _, err = execute(t, "", "render", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestRebalance(t *testing.T) {
	dir := isolate(t)
	r := rope.FromString("")
	for _, s := range strings.Split("a b c d e f g h", " ") {
		var err error
		r, err = r.Insert(r.Len(), s)
		require.NoError(t, err)
	}
	require.False(t, r.IsBalanced())
	path := writeRope(t, dir, "chain.json", r)

	out, _, err := execute(t, "", "rebalance", path, "--full")
	require.NoError(t, err)

	balanced, err := structured.Load(strings.NewReader(out), structured.JSON)
	require.NoError(t, err)
	assert.True(t, balanced.IsBalanced())
	assert.Equal(t, "abcdefgh", balanced.String())

	out, _, err = execute(t, "", "rebalance", path)
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh", decodeText(t, out))
}

func TestStats(t *testing.T) {
	dir := isolate(t)
	path := writeRope(t, dir, "big.toml", rope.Build(strings.Repeat("x", 5000), 64))

	out, _, err := execute(t, "", "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Characters")
	assert.Contains(t, out, "5,000")
	assert.Contains(t, out, "Balanced")
	assert.Contains(t, out, "true")
}

func TestTree(t *testing.T) {
	dir := isolate(t)
	rec := rope.BranchRecord(rope.LeafRecord("ab"), nil)
	r, err := rope.FromRecord(rec)
	require.NoError(t, err)
	path := writeRope(t, dir, "tree.json", r)

	out, _, err := execute(t, "", "tree", path)
	require.NoError(t, err)
	assert.Equal(t,
		"root: branch len=2 height=2\n  left: leaf len=2 \"ab\"\n  right: (absent)\n",
		out)

	assert.Equal(t, `"abc"…`, truncate("abcdef", 3))
	assert.Equal(t, `"abc"`, truncate("abc", 0))
}

func TestValidate(t *testing.T) {
	dir := isolate(t)
	good := writeRope(t, dir, "good.json", rope.Build("valid text", 8))

	out, _, err := execute(t, "", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid rope")
	assert.Contains(t, out, "10 characters")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"kind":"leaf"}`), 0o644))

	out, _, err = execute(t, "", "validate", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalid))
	assert.Contains(t, out, "does not match the rope schema")
}

func TestRunScript(t *testing.T) {
	dir := isolate(t)
	path := writeRope(t, dir, "doc.json", rope.Build("hello world", 8))
	lua := filepath.Join(dir, "shout.lua")
	require.NoError(t, os.WriteFile(lua, []byte(`
		doc.replace(0, 5, "HELLO")
		print(doc.len())
	`), 0o644))

	out, errOut, err := execute(t, "", "run", path, lua)
	require.NoError(t, err)
	assert.Equal(t, "HELLO world", decodeText(t, out))
	assert.Contains(t, errOut, "11")

	failing := filepath.Join(dir, "fail.lua")
	require.NoError(t, os.WriteFile(failing, []byte(`doc.delete(5, 1)`), 0o644))
	_, _, err = execute(t, "", "run", path, failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fail.lua")
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ropekit.toml"), []byte(`
[output]
format = "yaml"
`), 0o644))

	out, _, err := execute(t, "abc", "import", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: leaf")

	_, errOut, err := execute(t, "abc", "--log-level", "debug", "import", "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, "configuration loaded")

	_, _, err = execute(t, "abc", "--log-level", "loud", "import", "-")
	assert.Error(t, err)
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dshills/ropekit/internal/engine/rope"
	"github.com/dshills/ropekit/internal/structured"
)

// errInvalid is returned by validate when the input is rejected.
var errInvalid = errors.New("invalid rope")

func newStatsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <rope-file|->",
		Short: "Show the shape of a rope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.loadRope(cmd, args[0])
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), args[0], r)
			return nil
		},
	}
}

func writeStats(w io.Writer, name string, r rope.Rope) {
	s := r.Stats()

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(name)
	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRows([]table.Row{
		{"Characters", humanize.Comma(int64(s.Len))},
		{"Text size", humanize.Bytes(uint64(len(r.String())))},
		{"Height", s.Height},
		{"Leaves", humanize.Comma(int64(s.Leaves))},
		{"Empty leaves", s.EmptyLeaves},
		{"Branches", humanize.Comma(int64(s.Branches))},
		{"Absent children", s.AbsentChildren},
		{"Longest leaf", humanize.Comma(int64(s.MaxLeafLen))},
		{"Balanced", s.Balanced},
	})
	tbl.Render()
}

func newTreeCommand(e *env) *cobra.Command {
	var maxText int

	cmd := &cobra.Command{
		Use:   "tree <rope-file|->",
		Short: "Print the node structure of a rope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.loadRope(cmd, args[0])
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), r.Root(), maxText)
		},
	}

	cmd.Flags().IntVar(&maxText, "max-text", 40, "truncate leaf text to this many characters (0 for no limit)")
	return cmd
}

// treeLine is a pending line of the tree dump.
type treeLine struct {
	node  rope.Node
	depth int
	label string
}

// writeTree prints one line per node, children indented under their branch.
// Deep trees are walked with an explicit stack.
func writeTree(w io.Writer, root rope.Node, maxText int) error {
	branch := color.New(color.FgCyan, color.Bold)
	leaf := color.New(color.FgGreen)
	absent := color.New(color.Faint)

	var sb strings.Builder
	stack := []treeLine{{node: root, label: "root"}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sb.WriteString(strings.Repeat("  ", top.depth))
		sb.WriteString(top.label)
		sb.WriteString(": ")

		switch v := top.node.(type) {
		case nil:
			sb.WriteString(absent.Sprint("(absent)"))
		case *rope.Leaf:
			sb.WriteString(leaf.Sprintf("leaf len=%d %s", v.Len(), truncate(v.Text(), maxText)))
		case *rope.Branch:
			sb.WriteString(branch.Sprintf("branch len=%d height=%d", v.Len(), v.Height()))
			stack = append(stack,
				treeLine{node: v.Right(), depth: top.depth + 1, label: "right"},
				treeLine{node: v.Left(), depth: top.depth + 1, label: "left"},
			)
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// truncate quotes s, cutting it to limit characters.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return strconv.Quote(s)
	}
	return strconv.Quote(string(runes[:limit])) + "…"
}

func newValidateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rope-file|->",
		Short: "Check a structured rope against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, e, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, e *env, path string) error {
	w := cmd.OutOrStdout()
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	r, err := e.loadRope(cmd, path)
	if err == nil {
		ok.Fprintf(w, "%s is a valid rope\n", path)
		fmt.Fprintf(w, "  %s characters, height %d, balanced: %v\n",
			humanize.Comma(int64(r.Len())), r.Height(), r.IsBalanced())
		return nil
	}

	var schemaErr *structured.SchemaError
	var recordErr *rope.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		bad.Fprintf(w, "%s does not match the rope schema\n", path)
		for _, p := range schemaErr.Problems {
			bad.Fprintf(w, "  - %s: %s\n", p.Field, p.Description)
		}
	case errors.As(err, &recordErr):
		bad.Fprintf(w, "%s is malformed\n", path)
		bad.Fprintf(w, "  - %s: %s\n", recordErr.Path, recordErr.Reason)
	default:
		return err
	}
	return fmt.Errorf("%s: %w", path, errInvalid)
}

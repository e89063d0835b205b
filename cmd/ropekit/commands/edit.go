package commands

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dshills/ropekit/internal/document"
)

// editFunc applies one edit to a document from positional arguments.
type editFunc func(doc *document.Document, args []string) error

func newInsertCommand(e *env) *cobra.Command {
	cmd := newEditCommand(e, "insert <rope-file|-> <offset> <text>", 3, func(doc *document.Document, args []string) error {
		offset, err := parseOffset("offset", args[0])
		if err != nil {
			return err
		}
		return doc.Insert(offset, args[1])
	})
	cmd.Short = "Insert text at a character offset"
	return cmd
}

func newDeleteCommand(e *env) *cobra.Command {
	cmd := newEditCommand(e, "delete <rope-file|-> <start> <end>", 3, func(doc *document.Document, args []string) error {
		start, err := parseOffset("start", args[0])
		if err != nil {
			return err
		}
		end, err := parseOffset("end", args[1])
		if err != nil {
			return err
		}
		return doc.Delete(start, end)
	})
	cmd.Short = "Delete the characters in [start, end)"
	return cmd
}

func newEditCommand(e *env, use string, nargs int, apply editFunc) *cobra.Command {
	var out outputFlags
	var showDiff bool

	cmd := &cobra.Command{
		Use:  use,
		Args: cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.loadRope(cmd, args[0])
			if err != nil {
				return err
			}

			doc := e.newDocument(args[0], r)
			if err := apply(doc, args[1:]); err != nil {
				return err
			}

			if showDiff {
				return writeDiff(cmd.OutOrStdout(), r.String(), doc.Text())
			}
			return e.emit(cmd, &out, doc.Rope())
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a character diff of the text instead of the rope")
	return cmd
}

// writeDiff prints a character diff with deletions as [-text-] and
// insertions as {+text+}.
func writeDiff(w io.Writer, before, after string) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString(del.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(ins.Sprint("{+" + d.Text + "+}"))
		}
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

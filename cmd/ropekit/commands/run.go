package commands

import (
	"github.com/spf13/cobra"

	"github.com/dshills/ropekit/internal/script"
)

func newRunCommand(e *env) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "run <rope-file|-> <script.lua>",
		Short: "Edit a rope with a Lua script",
		Long: `Run a sandboxed Lua script against a rope and write the result.

The script sees a global table doc with 0-based character offsets:
  doc.insert(pos, text)   doc.delete(start, end)   doc.replace(start, end, text)
  doc.text()  doc.slice(start, end)  doc.len()  doc.height()  doc.balanced()
  doc.rebalance()  doc.balance()  doc.version()

Output of print goes to stderr.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.loadRope(cmd, args[0])
			if err != nil {
				return err
			}

			doc := e.newDocument(args[0], r)
			state := script.NewState(doc,
				script.WithTimeout(e.cfg.Script.Timeout),
				script.WithOutput(cmd.ErrOrStderr()),
				script.WithLogger(e.log))
			defer state.Close()

			if err := state.RunFile(cmd.Context(), args[1]); err != nil {
				return err
			}
			for _, ed := range doc.Edits() {
				e.log.Debug("script edit", "edit", ed.String(), "delta", ed.Delta())
			}
			return e.emit(cmd, &out, doc.Rope())
		},
	}

	out.register(cmd)
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
)

func newRebalanceCommand(e *env) *cobra.Command {
	var out outputFlags
	var full bool

	cmd := &cobra.Command{
		Use:   "rebalance <rope-file|->",
		Short: "Reduce the height of a rope",
		Long: `Apply one pass of rotations to reduce the height of a rope.
With --full the tree is rebuilt to be height-balanced everywhere.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.loadRope(cmd, args[0])
			if err != nil {
				return err
			}

			doc := e.newDocument(args[0], r)
			if full {
				doc.Balance()
			} else {
				doc.Rebalance()
			}
			return e.emit(cmd, &out, doc.Rope())
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&full, "full", false, "rebuild a fully balanced tree")
	return cmd
}

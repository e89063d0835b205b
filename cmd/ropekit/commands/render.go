package commands

import (
	"github.com/spf13/cobra"
)

func newRenderCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "render <rope-file|->",
		Short: "Print the text held by a rope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.loadRope(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(r.String()))
			return err
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/dshills/ropekit/internal/engine/rope"
)

func newImportCommand(e *env) *cobra.Command {
	var out outputFlags
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "import <text-file|->",
		Short: "Build a balanced rope from plain text",
		Long: `Build a balanced rope from a plain text file and write its structured form.
Leaves hold at most --chunk-size characters and prefer to end at a newline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("chunk-size") {
				chunkSize = e.cfg.Build.ChunkSize
			}

			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			r, err := rope.FromReader(in, chunkSize)
			if err != nil {
				return err
			}
			e.log.Debug("imported text", "path", args[0], "len", r.Len(), "height", r.Height())
			return e.emit(cmd, &out, r)
		},
	}

	out.register(cmd)
	cmd.Flags().IntVar(&chunkSize, "chunk-size", rope.DefaultChunkSize, "maximum characters per leaf")
	return cmd
}

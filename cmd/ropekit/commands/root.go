// Package commands implements the ropekit subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/ropekit/internal/config"
	"github.com/dshills/ropekit/internal/logging"
)

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// env is shared by every subcommand once the root has loaded configuration.
type env struct {
	configPath string
	logLevel   string
	logJSON    bool
	noColor    bool

	cfg *config.Config
	log *slog.Logger
}

// NewRootCommand builds the ropekit command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "ropekit",
		Short: "Inspect and edit persistent ropes",
		Long: `ropekit builds, edits and inspects ropes stored in structured form
(JSON, YAML or TOML).

Examples:
  ropekit import notes.txt -o notes.json
  ropekit insert notes.json 0 "Title\n" --diff
  ropekit stats notes.json
  ropekit run notes.json upcase.lua -o notes.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "config file (default .ropekit.toml in . or $HOME)")
	flags.StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&e.logJSON, "log-json", false, "write logs as JSON")
	flags.BoolVar(&e.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newImportCommand(e),
		newRenderCommand(e),
		newInsertCommand(e),
		newDeleteCommand(e),
		newRebalanceCommand(e),
		newStatsCommand(e),
		newTreeCommand(e),
		newValidateCommand(e),
		newRunCommand(e),
		newVersionCommand(info),
	)

	return root
}

// setup loads configuration and applies flag overrides.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}

	if e.noColor {
		color.NoColor = true
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = e.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = e.logJSON
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate flags: %w", err)
	}

	e.cfg = cfg
	e.log = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
	e.log.Debug("configuration loaded",
		"chunk_size", cfg.Build.ChunkSize,
		"rebalance_every", cfg.Document.RebalanceEvery,
		"output_format", cfg.Output.Format)
	return nil
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ropekit %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
		},
	}
}

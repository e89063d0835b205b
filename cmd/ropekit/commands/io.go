package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/ropekit/internal/document"
	"github.com/dshills/ropekit/internal/engine/rope"
	"github.com/dshills/ropekit/internal/structured"
)

// stdinPath reads input from standard input.
const stdinPath = "-"

// outputFlags are shared by commands that emit a rope.
type outputFlags struct {
	format string
	output string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: json, yaml, toml (default from config)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write to file instead of stdout")
}

// loadRope reads a structured rope from path, or from stdin for "-".
// Stdin input uses the configured output format.
func (e *env) loadRope(cmd *cobra.Command, path string) (rope.Rope, error) {
	if path != stdinPath {
		return structured.ReadFile(path)
	}

	f, err := structured.ParseFormat(e.cfg.Output.Format)
	if err != nil {
		return rope.Rope{}, err
	}
	return structured.Load(cmd.InOrStdin(), f)
}

// openInput opens path for reading, or stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == stdinPath {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

// emit writes r in structured form according to the output flags.
func (e *env) emit(cmd *cobra.Command, o *outputFlags, r rope.Rope) error {
	name := o.format
	if name == "" {
		name = e.cfg.Output.Format
		if o.output != "" {
			if f, err := structured.FormatFromPath(o.output); err == nil {
				name = string(f)
			}
		}
	}
	f, err := structured.ParseFormat(name)
	if err != nil {
		return err
	}

	if o.output == "" {
		return structured.Encode(cmd.OutOrStdout(), f, r.Record())
	}

	var buf bytes.Buffer
	if err := structured.Encode(&buf, f, r.Record()); err != nil {
		return err
	}
	if err := os.WriteFile(o.output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	e.log.Info("rope written", "path", o.output, "format", f, "len", r.Len())
	return nil
}

// newDocument opens an edit session using the configured rebalance policy.
func (e *env) newDocument(name string, r rope.Rope) *document.Document {
	return document.New(name, r,
		document.WithPolicy(document.Policy{
			RebalanceEvery: e.cfg.Document.RebalanceEvery,
			FullBalance:    e.cfg.Document.FullBalance,
			EditLogLimit:   e.cfg.Document.EditLogLimit,
		}),
		document.WithLogger(e.log))
}

// parseOffset parses a character offset argument.
func parseOffset(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, s)
	}
	return n, nil
}

// Package document provides an edit session over a rope.
package document

import (
	"fmt"
	"log/slog"

	"github.com/dshills/ropekit/internal/engine/rope"
	"github.com/dshills/ropekit/internal/logging"
)

// Policy controls automatic rebalancing.
type Policy struct {
	// RebalanceEvery rebalances after this many successful edits; 0 disables.
	RebalanceEvery int
	// FullBalance rebuilds the whole tree instead of running a rotation pass.
	FullBalance bool
	// EditLogLimit caps the edits kept by Edits; 0 uses DefaultEditLogLimit.
	EditLogLimit int
}

// EditError reports an edit the document rejected.
type EditError struct {
	Op  string // Operation name (e.g., "insert", "delete")
	Doc string // Document name
	Err error  // Underlying error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Doc, e.Err)
}

// Unwrap returns the underlying error.
func (e *EditError) Unwrap() error {
	return e.Err
}

// Document is a named rope with an edit counter and a rebalance policy.
// A Document is not safe for concurrent use.
type Document struct {
	// Name is the display name (filename or "Untitled").
	Name string

	rope    rope.Rope
	policy  Policy
	log     *slog.Logger
	edits   *editLog
	version int64 // Successful edits applied
	pending int   // Edits since the last rebalance
}

// Option configures a Document.
type Option func(*Document)

// WithPolicy sets the rebalance policy.
func WithPolicy(p Policy) Option {
	return func(d *Document) {
		d.policy = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		d.log = l
	}
}

// New creates a document over r.
func New(name string, r rope.Rope, opts ...Option) *Document {
	if name == "" {
		name = "Untitled"
	}
	d := &Document{Name: name, rope: r}
	for _, opt := range opts {
		opt(d)
	}
	d.edits = newEditLog(d.policy.EditLogLimit)
	d.log = logging.WithComponent(d.log, "document").With("doc", d.Name)
	return d
}

// Rope returns the current rope. The value stays valid after further edits.
func (d *Document) Rope() rope.Rope {
	return d.rope
}

// Text returns the full document content.
func (d *Document) Text() string {
	return d.rope.String()
}

// Len returns the character count.
func (d *Document) Len() int {
	return d.rope.Len()
}

// Version returns the number of successful edits.
func (d *Document) Version() int64 {
	return d.version
}

// Edits returns the most recent successful edits, oldest first.
func (d *Document) Edits() []Edit {
	return d.edits.list()
}

// Insert places text at offset.
func (d *Document) Insert(offset int, text string) error {
	r, err := d.rope.Insert(offset, text)
	return d.commit(Edit{Op: OpInsert, Start: offset, End: offset, Text: text}, r, err)
}

// Delete removes [start, end).
func (d *Document) Delete(start, end int) error {
	r, err := d.rope.Delete(start, end)
	return d.commit(Edit{Op: OpDelete, Start: start, End: end}, r, err)
}

// Replace replaces [start, end) with text.
func (d *Document) Replace(start, end int, text string) error {
	r, err := d.rope.Replace(start, end, text)
	return d.commit(Edit{Op: OpReplace, Start: start, End: end, Text: text}, r, err)
}

// Rebalance runs one rotation pass over the tree.
func (d *Document) Rebalance() {
	before := d.rope.Height()
	d.rope = d.rope.Rebalance()
	d.pending = 0
	d.log.Debug("rebalanced", "height_before", before, "height", d.rope.Height())
}

// Balance rebuilds the tree to full height balance.
func (d *Document) Balance() {
	before := d.rope.Height()
	d.rope = d.rope.Balance()
	d.pending = 0
	d.log.Debug("balanced", "height_before", before, "height", d.rope.Height())
}

func (d *Document) commit(e Edit, r rope.Rope, err error) error {
	if err != nil {
		d.log.Debug("edit rejected", "op", e.Op.String(), "start", e.Start, "end", e.End, "error", err)
		return &EditError{Op: e.Op.String(), Doc: d.Name, Err: err}
	}

	if e.End > e.Start {
		// The range was validated by the edit above.
		e.Removed, _ = d.rope.Slice(e.Start, e.End)
	}

	d.version++
	e.Version = d.version
	d.edits.add(e)
	d.rope = r
	d.pending++
	d.log.Debug("edit applied",
		"op", e.Op.String(),
		"start", e.Start,
		"end", e.End,
		"inserted", len(e.Text),
		"len", d.rope.Len(),
		"version", d.version)

	if d.policy.RebalanceEvery > 0 && d.pending >= d.policy.RebalanceEvery {
		if d.policy.FullBalance {
			d.Balance()
		} else {
			d.Rebalance()
		}
	}
	return nil
}

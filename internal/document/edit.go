package document

import "fmt"

// Op categorizes an edit.
type Op uint8

const (
	// OpInsert adds text at a point (Start == End).
	OpInsert Op = iota
	// OpDelete removes [Start, End).
	OpDelete
	// OpReplace removes [Start, End) and inserts Text in its place.
	OpReplace
)

// String returns the lowercase operation name.
func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Edit records one applied change. Start and End address the text before
// the change, in characters.
type Edit struct {
	Op      Op
	Start   int
	End     int
	Text    string // Inserted text
	Removed string // Text that was in [Start, End)
	Version int64  // Document version after the change
}

// Delta returns the change in character count.
func (e Edit) Delta() int {
	return len([]rune(e.Text)) - (e.End - e.Start)
}

func (e Edit) String() string {
	switch e.Op {
	case OpInsert:
		return fmt.Sprintf("v%d insert %d %q", e.Version, e.Start, e.Text)
	case OpDelete:
		return fmt.Sprintf("v%d delete [%d, %d) %q", e.Version, e.Start, e.End, e.Removed)
	default:
		return fmt.Sprintf("v%d replace [%d, %d) %q -> %q", e.Version, e.Start, e.End, e.Removed, e.Text)
	}
}

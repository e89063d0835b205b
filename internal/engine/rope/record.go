package rope

import "strconv"

// Record kinds.
const (
	KindLeaf   = "leaf"
	KindBranch = "branch"
)

// Record is the structured form of a node, used for debugging and interchange.
// A leaf record carries Text; a branch record carries Size and optional children.
// An absent child is a nil pointer.
type Record struct {
	Kind  string  `json:"kind" yaml:"kind" toml:"kind"`
	Text  *string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Size  *int    `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Left  *Record `json:"left,omitempty" yaml:"left,omitempty" toml:"left,omitempty"`
	Right *Record `json:"right,omitempty" yaml:"right,omitempty" toml:"right,omitempty"`
}

// LeafRecord returns a leaf record holding text.
func LeafRecord(text string) *Record {
	return &Record{Kind: KindLeaf, Text: &text}
}

// BranchRecord returns a branch record over left and right.
// Size is left unset; NodeFromRecord derives it from the leaves.
func BranchRecord(left, right *Record) *Record {
	return &Record{Kind: KindBranch, Left: left, Right: right}
}

// ToRecord converts n into its structured form. An absent node yields nil.
func ToRecord(n Node) *Record {
	switch v := normalize(n).(type) {
	case nil:
		return nil
	case *Leaf:
		return LeafRecord(v.text)
	case *Branch:
		size := v.size
		return &Record{
			Kind:  KindBranch,
			Size:  &size,
			Left:  ToRecord(v.left),
			Right: ToRecord(v.right),
		}
	default:
		panic(unknownNode(n))
	}
}

// NodeFromRecord builds a node from its structured form.
// The Size of branch records is informational and recomputed from the leaves.
func NodeFromRecord(rec *Record) (Node, error) {
	return fromRecord(rec, "root")
}

func fromRecord(rec *Record, path string) (Node, error) {
	if rec == nil {
		return nil, &ValidationError{Path: path, Reason: "missing record"}
	}

	switch rec.Kind {
	case KindLeaf:
		if rec.Text == nil {
			return nil, &ValidationError{Path: path, Reason: "leaf requires text"}
		}
		if rec.Left != nil || rec.Right != nil {
			return nil, &ValidationError{Path: path, Reason: "leaf cannot have children"}
		}
		return NewLeaf(*rec.Text), nil

	case KindBranch:
		if rec.Text != nil {
			return nil, &ValidationError{Path: path, Reason: "branch cannot have text"}
		}
		var left, right Node
		var err error
		if rec.Left != nil {
			if left, err = fromRecord(rec.Left, path+".left"); err != nil {
				return nil, err
			}
		}
		if rec.Right != nil {
			if right, err = fromRecord(rec.Right, path+".right"); err != nil {
				return nil, err
			}
		}
		return NewBranch(left, right), nil

	case "":
		return nil, &ValidationError{Path: path, Reason: "missing kind"}
	default:
		return nil, &ValidationError{Path: path, Reason: "unknown kind " + strconv.Quote(rec.Kind)}
	}
}

package rope

import "unicode/utf8"

// Rope is a persistent rope value.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and concurrent read access.
type Rope struct {
	root Node
}

// New creates an empty rope with no nodes.
func New() Rope {
	return Rope{}
}

// FromString creates a rope holding s in a single leaf.
func FromString(s string) Rope {
	return Rope{root: NewLeaf(s)}
}

// FromNode wraps an existing tree.
func FromNode(n Node) Rope {
	return Rope{root: normalize(n)}
}

// FromRecord builds a rope from its structured form.
func FromRecord(rec *Record) (Rope, error) {
	n, err := NodeFromRecord(rec)
	if err != nil {
		return Rope{}, err
	}
	return Rope{root: n}, nil
}

// Root returns the root node, or nil for an empty rope.
func (r Rope) Root() Node {
	return r.root
}

// Len returns the total character count.
func (r Rope) Len() int {
	return Len(r.root)
}

// Height returns the height of the tree; 0 for a rope with no nodes.
func (r Rope) Height() int {
	return Height(r.root)
}

// IsBalanced reports whether every branch has child heights within one.
func (r Rope) IsBalanced() bool {
	return IsBalanced(r.root)
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text.
// Use sparingly for large ropes.
func (r Rope) String() string {
	return Render(r.root)
}

// Record returns the structured form of the rope, or nil if it has no nodes.
func (r Rope) Record() *Record {
	return ToRecord(r.root)
}

// Stats returns shape metrics for the rope.
func (r Rope) Stats() Stats {
	return CollectStats(r.root)
}

// Insert inserts text at the given character offset.
func (r Rope) Insert(offset int, text string) (Rope, error) {
	n, err := Insert(r.root, text, offset)
	if err != nil {
		return r, err
	}
	return Rope{root: n}, nil
}

// Delete removes text in the character range [start, end).
func (r Rope) Delete(start, end int) (Rope, error) {
	n, err := DeleteRange(r.root, start, end)
	if err != nil {
		return r, err
	}
	return Rope{root: n}, nil
}

// Replace replaces text in the character range [start, end) with text.
func (r Rope) Replace(start, end int, text string) (Rope, error) {
	if err := checkRange("replace", start, end, r.Len()); err != nil {
		return r, err
	}
	left, rest := split(r.root, start)
	_, right := split(rest, end-start)
	return Rope{root: Concat(left, Concat(NewLeaf(text), right))}, nil
}

// Split splits the rope at offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope, error) {
	left, right, err := Split(r.root, offset)
	if err != nil {
		return r, Rope{}, err
	}
	return Rope{root: left}, Rope{root: right}, nil
}

// Concat joins two ropes under a new branch.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: Concat(r.root, other.root)}
}

// Rebalance applies one rotation pass. See Rebalance.
func (r Rope) Rebalance() Rope {
	return Rope{root: Rebalance(r.root)}
}

// Balance rebuilds the rope into a height-balanced tree. See Balance.
func (r Rope) Balance() Rope {
	return Rope{root: Balance(r.root)}
}

// Slice returns the text in the character range [start, end).
func (r Rope) Slice(start, end int) (string, error) {
	if err := checkRange("slice", start, end, r.Len()); err != nil {
		return "", err
	}

	buf := make([]byte, 0, end-start)
	it := Leaves(r.root)
	for it.Next() && it.Offset() < end {
		leaf := it.Leaf()
		leafEnd := it.Offset() + leaf.size
		if leafEnd <= start {
			continue
		}
		from := max(start-it.Offset(), 0)
		to := min(end, leafEnd) - it.Offset()
		buf = append(buf, leaf.text[byteIndex(leaf.text, leaf.size, from):byteIndex(leaf.text, leaf.size, to)]...)
	}
	return string(buf), nil
}

// CharAt returns the character at the given offset.
func (r Rope) CharAt(offset int) (rune, error) {
	if offset < 0 || offset >= r.Len() {
		return 0, offsetError("char", offset, r.Len())
	}

	n := r.root
	for {
		switch v := n.(type) {
		case *Leaf:
			i := byteIndex(v.text, v.size, offset)
			c, _ := utf8.DecodeRuneInString(v.text[i:])
			return c, nil
		case *Branch:
			if leftLen := Len(v.left); offset < leftLen {
				n = v.left
			} else {
				n = v.right
				offset -= leftLen
			}
		default:
			panic(unknownNode(n))
		}
	}
}

// Equals returns true if two ropes contain the same text.
// Note: This compares content, not structure.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}

	a, b := Leaves(r.root), Leaves(other.root)
	var as, bs string
	for {
		for as == "" && a.Next() {
			as = a.Leaf().text
		}
		for bs == "" && b.Next() {
			bs = b.Leaf().text
		}
		if as == "" || bs == "" {
			return as == bs
		}

		n := min(len(as), len(bs))
		if as[:n] != bs[:n] {
			return false
		}
		as, bs = as[n:], bs[n:]
	}
}

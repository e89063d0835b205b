package rope

import (
	"strings"
	"unicode/utf8"
)

// Node is a rope subtree: either a *Leaf or a *Branch.
// A nil Node is an absent child and behaves as an empty tree.
// The set of variants is closed; every switch over it panics on anything else.
type Node interface {
	// Len returns the number of characters in the subtree.
	Len() int

	// Height returns 1 for a leaf and 1 + the taller child's height for a branch.
	Height() int

	// IsBalanced reports whether every branch in the subtree has child
	// heights differing by at most one.
	IsBalanced() bool

	// String renders the full text of the subtree.
	String() string

	node()
}

// Leaf holds a contiguous text fragment.
// Leaves are immutable once created.
type Leaf struct {
	text string
	size int // Character count of text
}

// NewLeaf creates a leaf holding text.
func NewLeaf(text string) *Leaf {
	return &Leaf{
		text: text,
		size: utf8.RuneCountInString(text),
	}
}

// Text returns the leaf's fragment.
func (l *Leaf) Text() string {
	return l.text
}

// Len returns the character count of the fragment.
func (l *Leaf) Len() int {
	return l.size
}

// Height returns 1.
func (l *Leaf) Height() int {
	return 1
}

// IsBalanced returns true; leaves are trivially balanced.
func (l *Leaf) IsBalanced() bool {
	return true
}

// String returns the leaf's fragment.
func (l *Leaf) String() string {
	return l.text
}

func (*Leaf) node() {}

// splitAt splits the fragment at a character offset in [0, Len].
func (l *Leaf) splitAt(pos int) (*Leaf, *Leaf) {
	i := byteIndex(l.text, l.size, pos)
	return &Leaf{text: l.text[:i], size: pos},
		&Leaf{text: l.text[i:], size: l.size - pos}
}

// byteIndex converts a character offset into a byte index of s.
// size is the character count of s.
func byteIndex(s string, size, pos int) int {
	if size == len(s) {
		// ASCII fast path
		return pos
	}
	if pos == size {
		return len(s)
	}
	i := 0
	for n := 0; n < pos; n++ {
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
	}
	return i
}

// Branch joins two subtrees. Either child may be absent.
// Branches are immutable once created; size and height are cached.
type Branch struct {
	left   Node
	right  Node
	size   int // Len(left) + Len(right)
	height int // 1 + max(Height(left), Height(right))
}

// NewBranch creates a branch over left and right, computing its cached metrics.
func NewBranch(left, right Node) *Branch {
	left, right = normalize(left), normalize(right)
	return &Branch{
		left:   left,
		right:  right,
		size:   Len(left) + Len(right),
		height: 1 + max(Height(left), Height(right)),
	}
}

// Left returns the left child, or nil if absent.
func (b *Branch) Left() Node {
	return b.left
}

// Right returns the right child, or nil if absent.
func (b *Branch) Right() Node {
	return b.right
}

// Len returns the cached character count of the subtree.
func (b *Branch) Len() int {
	return b.size
}

// Height returns the cached height of the subtree.
func (b *Branch) Height() int {
	return b.height
}

// IsBalanced checks every branch of the subtree.
// The walk uses an explicit stack so skewed trees do not recurse deeply.
func (b *Branch) IsBalanced() bool {
	stack := []*Branch{b}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if diff := Height(top.left) - Height(top.right); diff > 1 || diff < -1 {
			return false
		}
		if lb, ok := top.left.(*Branch); ok {
			stack = append(stack, lb)
		}
		if rb, ok := top.right.(*Branch); ok {
			stack = append(stack, rb)
		}
	}
	return true
}

// String renders the subtree's text.
func (b *Branch) String() string {
	var sb strings.Builder
	appendTo(&sb, b)
	return sb.String()
}

func (*Branch) node() {}

// Len returns the character count of n; 0 for an absent node.
func Len(n Node) int {
	if n = normalize(n); n == nil {
		return 0
	}
	return n.Len()
}

// Height returns the height of n; 0 for an absent node.
func Height(n Node) int {
	if n = normalize(n); n == nil {
		return 0
	}
	return n.Height()
}

// IsBalanced reports whether n is balanced; an absent node is.
func IsBalanced(n Node) bool {
	if n = normalize(n); n == nil {
		return true
	}
	return n.IsBalanced()
}

// Render returns the text of n; "" for an absent node.
func Render(n Node) string {
	var sb strings.Builder
	appendTo(&sb, n)
	return sb.String()
}

// appendTo writes the text of n to sb in order.
func appendTo(sb *strings.Builder, n Node) {
	it := Leaves(n)
	for it.Next() {
		sb.WriteString(it.Leaf().text)
	}
}

// normalize turns typed nil pointers into an untyped nil Node.
func normalize(n Node) Node {
	switch v := n.(type) {
	case nil:
		return nil
	case *Leaf:
		if v == nil {
			return nil
		}
	case *Branch:
		if v == nil {
			return nil
		}
	default:
		panic(unknownNode(n))
	}
	return n
}

// Concat joins left and right under a new branch.
// Neither operand is validated or rebalanced; both may be nil.
func Concat(left, right Node) *Branch {
	return NewBranch(left, right)
}

// Split divides n at character offset pos.
// The left tree holds [0, pos) and the right tree holds [pos, Len).
// Absent results are returned as nil.
func Split(n Node, pos int) (Node, Node, error) {
	n = normalize(n)
	if err := checkOffset("split", pos, Len(n)); err != nil {
		return nil, nil, err
	}
	left, right := split(n, pos)
	return left, right, nil
}

// split assumes 0 <= pos <= Len(n).
// Ties at a child boundary go right.
func split(n Node, pos int) (Node, Node) {
	switch v := n.(type) {
	case nil:
		return nil, nil
	case *Leaf:
		left, right := v.splitAt(pos)
		return left, right
	case *Branch:
		leftLen := Len(v.left)
		if pos < leftLen {
			innerLeft, innerRight := split(v.left, pos)
			return NewBranch(innerLeft, nil), NewBranch(innerRight, v.right)
		}
		innerLeft, innerRight := split(v.right, pos-leftLen)
		return NewBranch(v.left, innerLeft), innerRight
	default:
		panic(unknownNode(n))
	}
}

// Insert places text at character offset at.
// Empty text still restructures the tree around the split point.
func Insert(n Node, text string, at int) (Node, error) {
	n = normalize(n)
	if err := checkOffset("insert", at, Len(n)); err != nil {
		return nil, err
	}
	left, right := split(n, at)
	return Concat(left, Concat(NewLeaf(text), right)), nil
}

// DeleteRange removes characters in [start, end).
func DeleteRange(n Node, start, end int) (Node, error) {
	n = normalize(n)
	if err := checkRange("delete", start, end, Len(n)); err != nil {
		return nil, err
	}
	left, rest := split(n, start)
	_, right := split(rest, end-start)
	return Concat(left, right), nil
}

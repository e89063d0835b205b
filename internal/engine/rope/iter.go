package rope

// LeafIterator walks the leaves of a tree in order.
// It keeps an explicit stack, so its depth is bounded by memory rather than
// the goroutine stack.
type LeafIterator struct {
	stack  []Node
	leaf   *Leaf
	offset int // Character offset of the current leaf
	next   int // Character offset of the next leaf
}

// Leaves returns an iterator over the leaves of n, including empty ones.
func Leaves(n Node) *LeafIterator {
	it := &LeafIterator{stack: make([]Node, 0, 16)}
	if n = normalize(n); n != nil {
		it.stack = append(it.stack, n)
	}
	return it
}

// Next advances to the next leaf.
// Returns true if there is a leaf, false if iteration is complete.
func (it *LeafIterator) Next() bool {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		switch v := top.(type) {
		case *Leaf:
			it.leaf = v
			it.offset = it.next
			it.next += v.size
			return true
		case *Branch:
			// Right first so the left child is popped first.
			if v.right != nil {
				it.stack = append(it.stack, v.right)
			}
			if v.left != nil {
				it.stack = append(it.stack, v.left)
			}
		default:
			panic(unknownNode(top))
		}
	}
	it.leaf = nil
	return false
}

// Leaf returns the current leaf.
func (it *LeafIterator) Leaf() *Leaf {
	return it.leaf
}

// Offset returns the character offset of the start of the current leaf.
func (it *LeafIterator) Offset() int {
	return it.offset
}

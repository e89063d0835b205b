package rope

// Rebalance reduces the height of n with AVL-style rotations.
//
// Children are rebalanced first. A branch whose child heights differ by two or
// more is then rotated once toward its taller child: that child becomes the
// subtree root and the old root is demoted, taking the taller child's inner
// grandchild. If the inner grandchild is the taller of the two, it is first
// rotated to the outer side so that the taller grandchild keeps moving up.
//
// Only one rotation step is applied per branch, so a single call is not
// guaranteed to balance arbitrarily skewed trees. Use Balance for that.
// Content is always preserved.
func Rebalance(n Node) Node {
	switch v := normalize(n).(type) {
	case nil:
		return nil
	case *Leaf:
		return v
	case *Branch:
		left, right := Rebalance(v.left), Rebalance(v.right)
		b := v
		if left != v.left || right != v.right {
			b = NewBranch(left, right)
		}
		return rotate(b)
	default:
		panic(unknownNode(n))
	}
}

// rotate applies one rotation step to b if its children are out of balance.
func rotate(b *Branch) Node {
	hl, hr := Height(b.left), Height(b.right)
	switch {
	case hr-hl > 1:
		return rotateLeft(b)
	case hl-hr > 1:
		return rotateRight(b)
	}
	return b
}

// rotateLeft promotes the right child of b.
func rotateLeft(b *Branch) Node {
	high, ok := b.right.(*Branch)
	if !ok {
		return b
	}
	if inner, ok := high.left.(*Branch); ok && inner.height > Height(high.right) {
		high = NewBranch(inner.left, NewBranch(inner.right, high.right))
	}
	return NewBranch(NewBranch(b.left, high.left), high.right)
}

// rotateRight promotes the left child of b.
func rotateRight(b *Branch) Node {
	high, ok := b.left.(*Branch)
	if !ok {
		return b
	}
	if inner, ok := high.right.(*Branch); ok && inner.height > Height(high.left) {
		high = NewBranch(NewBranch(high.left, inner.left), inner.right)
	}
	return NewBranch(high.left, NewBranch(high.right, b.right))
}

// Balance rebuilds n into a height-balanced tree over its non-empty leaves.
// Leaves are shared with n, never copied. An empty tree yields nil.
func Balance(n Node) Node {
	var leaves []Node
	it := Leaves(n)
	for it.Next() {
		if it.Leaf().size > 0 {
			leaves = append(leaves, it.Leaf())
		}
	}
	return buildBalanced(leaves)
}

// buildBalanced joins nodes in order so sibling heights differ by at most one.
func buildBalanced(nodes []Node) Node {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}
	mid := len(nodes) / 2
	return NewBranch(buildBalanced(nodes[:mid]), buildBalanced(nodes[mid:]))
}

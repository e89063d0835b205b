package rope

// Stats summarizes the shape of a tree.
type Stats struct {
	Len            int  // Characters
	Height         int  // Height of the root; 0 for an empty tree
	Leaves         int  // Leaf count, including empty leaves
	EmptyLeaves    int  // Leaves holding ""
	Branches       int  // Branch count
	AbsentChildren int  // Branch child slots that are nil
	MaxLeafLen     int  // Longest leaf, in characters
	Balanced       bool // Result of IsBalanced
}

// CollectStats walks n and gathers its Stats.
func CollectStats(n Node) Stats {
	n = normalize(n)
	s := Stats{
		Len:      Len(n),
		Height:   Height(n),
		Balanced: IsBalanced(n),
	}
	if n == nil {
		return s
	}

	stack := []Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := top.(type) {
		case *Leaf:
			s.Leaves++
			if v.size == 0 {
				s.EmptyLeaves++
			}
			s.MaxLeafLen = max(s.MaxLeafLen, v.size)
		case *Branch:
			s.Branches++
			for _, child := range []Node{v.left, v.right} {
				if child == nil {
					s.AbsentChildren++
					continue
				}
				stack = append(stack, child)
			}
		default:
			panic(unknownNode(top))
		}
	}
	return s
}

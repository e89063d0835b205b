// Package rope provides a persistent binary rope for efficient text storage and editing.
//
// A rope is a binary tree where leaf nodes hold contiguous text fragments and
// branch nodes hold up to two children together with the cached size and height
// of their subtree. The in-order concatenation of the leaves is the text.
//
// Key features:
//   - Split and Concat primitives; Insert and DeleteRange are built from them
//   - Persistent operations: every call returns new nodes along the touched path
//     and shares untouched subtrees, so inputs stay valid after the call
//   - Offsets count Unicode code points, not bytes
//   - Rebalance performs one AVL-style rotation per unbalanced branch;
//     Balance rebuilds a fully height-balanced tree from the leaves
//   - A structured Record form for debugging and interchange
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r, _ = r.Insert(5, ",")        // "hello, world"
//	r, _ = r.Delete(0, 7)          // "world"
//	text := r.String()             // "world"
//
// Offsets outside [0, Len] are rejected with an error wrapping ErrOutOfRange;
// they are never clamped.
package rope

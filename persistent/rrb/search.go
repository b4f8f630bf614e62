package rrb

import "sort"

// locate implements spec.md §4.1: given a branch n, an absolute index i
// relative to the start of n's subtree, and n's shift, return the child
// slot to descend into and the residual index re-based to that child's
// subtree.
func locate[T any](n *node[T], i, shift int) (childSlot, residual int) {
	assertThat(!n.leaf, "locate called on a leaf")
	if n.sizes == nil {
		childSlot = (i >> shift) & indexMask
		residual = i - (childSlot << shift)
		return childSlot, residual
	}
	// Relaxed: smallest slot such that sizes[slot] > i. The teacher's
	// btree.findSlot walks a sorted slice with sort.Search; the size
	// table is sorted (cumulative), so the same idiom applies here.
	childSlot = sort.Search(len(n.sizes), func(k int) bool {
		return n.sizes[k] > i
	})
	assertThat(childSlot < len(n.sizes), "relaxed index search: index %d out of range of size table", i)
	if childSlot > 0 {
		residual = i - n.sizes[childSlot-1]
	} else {
		residual = i
	}
	return childSlot, residual
}

package rrb

// Branching constants. B is a compile-time power of two; downstream code
// assumes this and must not parameterize it at runtime.
const (
	bitsPerLevel = 5
	nodeWidth    = 1 << bitsPerLevel // B = 32
	indexMask    = nodeWidth - 1     // MASK = 31
	invariantTol = 1                 // INVARIANT
	extraSlack   = 2                 // EXTRAS
	maxHeight    = 10                // MAX_HEIGHT
)

// token is an owner tag. Identity, not value, is what matters: two tokens
// are "the same owner" iff they are the same pointer. A nil token means the
// node is frozen (immutable, safe to share). The struct is not zero-size,
// so every &token{} is a distinct pointer.
type token struct{ _ byte }

// node is the RRB trie's tagged union: a leaf holds values directly, a
// branch holds child pointers and, when relaxed, a cumulative size table.
// A branch with a nil sizes slice is dense: every child but possibly the
// last holds exactly 1<<shift elements at that branch's level.
type node[T any] struct {
	leaf     bool
	owner    *token
	values   []T // leaf only
	children []*node[T]
	sizes    []int // branch only; nil ⇒ dense
}

func newLeaf[T any](values []T, owner *token) *node[T] {
	return &node[T]{leaf: true, values: values, owner: owner}
}

func newBranch[T any](children []*node[T], sizes []int, owner *token) *node[T] {
	return &node[T]{children: children, sizes: sizes, owner: owner}
}

// emptyLeaf returns a fresh leaf with zero length but capacity B, owned by
// owner (nil for a frozen leaf).
func emptyLeaf[T any](owner *token) *node[T] {
	return newLeaf(make([]T, 0, nodeWidth), owner)
}

func emptyBranch[T any](owner *token) *node[T] {
	return newBranch[T](make([]*node[T], 0, nodeWidth), nil, owner)
}

// length returns the number of slots used at this node: leaf values or
// children, whichever applies.
func (n *node[T]) length() int {
	if n.leaf {
		return len(n.values)
	}
	return len(n.children)
}

func (n *node[T]) full() bool {
	return n.length() == nodeWidth
}

func (n *node[T]) relaxed() bool {
	return !n.leaf && n.sizes != nil
}

// cloneLeaf produces a copy-on-write duplicate of a leaf, owned by owner.
func (n *node[T]) cloneLeaf(owner *token) *node[T] {
	assertThat(n.leaf, "cloneLeaf called on a branch")
	values := make([]T, len(n.values), nodeWidth)
	copy(values, n.values)
	return newLeaf(values, owner)
}

// cloneBranch produces a copy-on-write duplicate of a branch, owned by
// owner. The child pointer slice is copied; the children themselves are
// shared by reference (structural sharing).
func (n *node[T]) cloneBranch(owner *token) *node[T] {
	assertThat(!n.leaf, "cloneBranch called on a leaf")
	children := make([]*node[T], len(n.children), nodeWidth)
	copy(children, n.children)
	var sizes []int
	if n.sizes != nil {
		sizes = make([]int, len(n.sizes), nodeWidth)
		copy(sizes, n.sizes)
	}
	return newBranch(children, sizes, owner)
}

func (n *node[T]) clone(owner *token) *node[T] {
	if n.leaf {
		return n.cloneLeaf(owner)
	}
	return n.cloneBranch(owner)
}

// forMutation returns n itself if it is already owned by owner (mutate in
// place), otherwise a fresh clone owned by owner (path copy). Used by the
// builder's in-place update paths; immutable operations always clone
// (pass a nil owner to force a frozen clone).
func forMutation[T any](n *node[T], owner *token) *node[T] {
	if owner != nil && n.owner == owner {
		return n
	}
	return n.clone(owner)
}

// count returns the total number of elements in the subtree rooted at n,
// which is at height implying the given shift.
func count[T any](n *node[T], shift int) int {
	if n.leaf {
		return len(n.values)
	}
	if n.sizes != nil {
		return n.sizes[len(n.sizes)-1]
	}
	last := n.length() - 1
	return last<<shift + count(n.children[last], shift-bitsPerLevel)
}

// newPath wraps leaf in nested single-child branches until it sits at
// shift (measured in the same units as Sequence.shift, i.e. height*BITS).
// owner is propagated to every branch created along the way.
func newPath[T any](shift int, leaf *node[T], owner *token) *node[T] {
	n := leaf
	for s := 0; s < shift; s += bitsPerLevel {
		n = newBranch([]*node[T]{n}, nil, owner)
	}
	return n
}

// sizeTable computes the cumulative size table for children of a branch
// whose own shift is parentShift, and reports whether the resulting
// branch would be balanced (dense-eligible) per spec.md §4.10. Each
// child lives one level down, at parentShift-bitsPerLevel.
func sizeTable[T any](children []*node[T], parentShift int) (sizes []int, balanced bool) {
	childShift := parentShift - bitsPerLevel
	sizes = make([]int, len(children))
	balanced = true
	sum := 0
	for i, c := range children {
		sum += count(c, childShift)
		sizes[i] = sum
		if i < len(children)-1 {
			if sum != (i+1)<<parentShift || c.relaxed() {
				balanced = false
			}
		} else if c.relaxed() {
			balanced = false
		}
	}
	return sizes, balanced
}

// setSizes installs either a size table or nil (dense) on branch, whose
// own shift is parentShift, per spec.md §4.10: "SetSizes — deciding
// dense vs relaxed".
func setSizes[T any](branch *node[T], parentShift int) {
	assertThat(!branch.leaf, "setSizes called on a leaf")
	sizes, balanced := sizeTable(branch.children, parentShift)
	if balanced {
		branch.sizes = nil
		return
	}
	branch.sizes = sizes
}

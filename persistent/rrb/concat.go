package rrb

// cursor walks a flattened candidate list, splitting a candidate node
// by child-slot count (not by absolute element index) only when a plan
// target falls inside it rather than on one of its boundaries.
type cursor[T any] struct {
	candidates []*node[T]
	idx        int
}

// take returns a node with exactly `want` direct slots (children for a
// branch, values for a leaf, at level childShift), consuming (and, when
// needed, splitting) candidates from the cursor. When the cursor sits
// exactly on a candidate boundary and that candidate already has
// exactly `want` slots, it is reused by reference — the
// structural-sharing optimization spec.md §4.9.1 calls for.
func (cur *cursor[T]) take(childShift, want int) *node[T] {
	src := cur.candidates[cur.idx]
	total := src.length()
	if total == want {
		cur.idx++
		return src
	}
	if total > want {
		head, tail := splitSlots(src, want, childShift)
		cur.candidates[cur.idx] = tail
		return head
	}
	// total < want: this single candidate isn't enough; merge it with
	// however many whole candidates follow, splitting only the last one.
	parts := make([]*node[T], 0, 4)
	remaining := want
	for remaining > 0 {
		c := cur.candidates[cur.idx]
		cc := c.length()
		if cc <= remaining {
			parts = append(parts, c)
			remaining -= cc
			cur.idx++
			continue
		}
		head, tail := splitSlots(c, remaining, childShift)
		cur.candidates[cur.idx] = tail
		parts = append(parts, head)
		remaining = 0
	}
	return mergeParts(parts, childShift)
}

// splitSlots partitions n's own direct slots — children for a branch,
// values for a leaf — into a head of exactly `at` slots and the
// remaining tail, both still at n's own level (childShift). The
// descendants themselves are untouched and shared by reference.
func splitSlots[T any](n *node[T], at, childShift int) (head, tail *node[T]) {
	if n.leaf {
		h := make([]T, at, nodeWidth)
		copy(h, n.values[:at])
		t := make([]T, len(n.values)-at, nodeWidth)
		copy(t, n.values[at:])
		return newLeaf(h, nil), newLeaf(t, nil)
	}
	hc := make([]*node[T], at, nodeWidth)
	copy(hc, n.children[:at])
	tc := make([]*node[T], len(n.children)-at, nodeWidth)
	copy(tc, n.children[at:])
	head = newBranch(hc, nil, nil)
	setSizes(head, childShift)
	tail = newBranch(tc, nil, nil)
	setSizes(tail, childShift)
	return head, tail
}

// mergeParts flattens a run of same-level nodes into a single node at
// that same level: leaf values concatenate directly; branch children
// concatenate and the result's dense/relaxed status is decided by
// setSizes.
func mergeParts[T any](parts []*node[T], childShift int) *node[T] {
	if childShift == 0 {
		values := make([]T, 0, nodeWidth)
		for _, p := range parts {
			values = append(values, p.values...)
		}
		return newLeaf(values, nil)
	}
	children := make([]*node[T], 0, nodeWidth)
	for _, p := range parts {
		children = append(children, p.children...)
	}
	branch := newBranch(children, nil, nil)
	setSizes(branch, childShift)
	return branch
}

// buildPlan implements spec.md §4.9.1's search-and-redistribute: slide
// child slots leftward from underfilled candidates until the candidate
// list is packed densely within EXTRAS slack of optimal. The plan
// tracks slot counts (children per branch, values per leaf) — the fan
// -out of the resulting nodes — not the element totals beneath them.
func buildPlan[T any](candidates []*node[T]) []int {
	plan := make([]int, len(candidates))
	total := 0
	for i, c := range candidates {
		plan[i] = c.length()
		total += plan[i]
	}
	optimal := (total + nodeWidth - 1) / nodeWidth

	i := 0
	for optimal+extraSlack < len(plan) {
		for i < len(plan) && plan[i] > nodeWidth-invariantTol {
			i++
		}
		if i >= len(plan)-1 {
			break
		}
		for plan[i] < nodeWidth && i+1 < len(plan) {
			take := nodeWidth - plan[i]
			if take > plan[i+1] {
				take = plan[i+1]
			}
			plan[i] += take
			plan[i+1] -= take
			if plan[i+1] == 0 {
				plan = append(plan[:i+1], plan[i+2:]...)
			} else {
				break
			}
		}
		if i > 0 {
			i--
		}
	}
	return plan
}

// rebalance implements the remainder of spec.md §4.9/§4.9.1: assemble the
// candidate list at the meeting level, run the redistribution plan, and
// execute it, splitting into two branches under a fresh parent if the
// plan overflows B.
func rebalance[T any](leftSiblings []*node[T], center *node[T], centerShift int, rightSiblings []*node[T], meetingShift int) (*node[T], int) {
	childShift := meetingShift - bitsPerLevel
	candidates := make([]*node[T], 0, len(leftSiblings)+len(rightSiblings)+nodeWidth)
	candidates = append(candidates, leftSiblings...)
	if centerShift == meetingShift {
		// center sits one level above childShift: its children are the
		// actual candidates and must be flattened in.
		candidates = append(candidates, center.children...)
	} else {
		// center is itself already a childShift-level node (e.g. a
		// merged leaf from concatTrie's len_l+len_r<=B base case).
		candidates = append(candidates, center)
	}
	candidates = append(candidates, rightSiblings...)

	plan := buildPlan(candidates)
	cur := &cursor[T]{candidates: candidates}
	newChildren := make([]*node[T], 0, len(plan))
	for _, target := range plan {
		newChildren = append(newChildren, cur.take(childShift, target))
	}

	if len(newChildren) <= nodeWidth {
		branch := newBranch(newChildren, nil, nil)
		setSizes(branch, meetingShift)
		return branch, meetingShift
	}
	leftChildren := make([]*node[T], nodeWidth)
	copy(leftChildren, newChildren[:nodeWidth])
	rightChildren := append([]*node[T]{}, newChildren[nodeWidth:]...)
	leftBranch := newBranch(leftChildren, nil, nil)
	setSizes(leftBranch, meetingShift)
	rightBranch := newBranch(rightChildren, nil, nil)
	setSizes(rightBranch, meetingShift)
	parent := newBranch([]*node[T]{leftBranch, rightBranch}, nil, nil)
	setSizes(parent, meetingShift+bitsPerLevel)
	return parent, meetingShift + bitsPerLevel
}

// concatTrie implements spec.md §4.9: meet two trees at matching heights,
// concatenate their center children, and rebalance.
func concatTrie[T any](left *node[T], leftShift int, right *node[T], rightShift int) (*node[T], int) {
	if leftShift == 0 && rightShift == 0 {
		if len(left.values)+len(right.values) <= nodeWidth {
			values := make([]T, 0, nodeWidth)
			values = append(values, left.values...)
			values = append(values, right.values...)
			return newLeaf(values, nil), 0
		}
		branch := newBranch([]*node[T]{left, right}, nil, nil)
		setSizes(branch, bitsPerLevel)
		return branch, bitsPerLevel
	}
	if leftShift > rightShift {
		lastIdx := left.length() - 1
		center, centerShift := concatTrie(left.children[lastIdx], leftShift-bitsPerLevel, right, rightShift)
		return rebalance(left.children[:lastIdx], center, centerShift, nil, leftShift)
	}
	if leftShift < rightShift {
		center, centerShift := concatTrie(left, leftShift, right.children[0], rightShift-bitsPerLevel)
		return rebalance(nil, center, centerShift, right.children[1:], rightShift)
	}
	// leftShift == rightShift > 0
	center, centerShift := concatTrie(left.children[left.length()-1], leftShift-bitsPerLevel, right.children[0], rightShift-bitsPerLevel)
	return rebalance(left.children[:left.length()-1], center, centerShift, right.children[1:], leftShift)
}

// foldTailIntoTrie installs a (possibly partial) tail as the rightmost
// leaf of (root, shift), reusing the right-spine push-down machinery from
// append.go — nothing there requires the installed leaf, or the trie's
// existing last leaf, to be full: setSizes relaxes every branch on the
// way whose children are no longer dense.
func foldTailIntoTrie[T any](root *node[T], shift int, tail []T, tailLen int) (*node[T], int) {
	if tailLen == 0 {
		return root, shift
	}
	values := make([]T, tailLen, nodeWidth)
	copy(values, tail[:tailLen])
	leaf := newLeaf(values, nil)
	return appendLeafToTrie(root, shift, leaf, nil)
}

// Concat returns a new sequence holding s's elements followed by other's.
func (s Sequence[T]) Concat(other Sequence[T]) Sequence[T] {
	if s.cnt == 0 {
		return other
	}
	if other.cnt == 0 {
		return s
	}
	leftRoot, leftShift := foldTailIntoTrie(s.root, s.shift, s.tail, s.tailLen)
	rightRoot, rightShift := foldTailIntoTrie(other.root, other.shift, other.tail, other.tailLen)

	var newRoot *node[T]
	var newShift int
	switch {
	case leftRoot == nil:
		newRoot, newShift = rightRoot, rightShift
	case rightRoot == nil:
		newRoot, newShift = leftRoot, leftShift
	default:
		newRoot, newShift = concatTrie(leftRoot, leftShift, rightRoot, rightShift)
	}
	newRoot, newShift = collapseHeight(newRoot, newShift)
	return Sequence[T]{root: newRoot, shift: newShift, cnt: s.cnt + other.cnt}
}

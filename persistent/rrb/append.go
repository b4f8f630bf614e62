package rrb

// pushDownRightSpine implements spec.md §4.4.1, "right-spine push-down":
// descend the rightmost child of n, installing the full leaf as far right
// as possible without violating density. owner is nil for the immutable
// path (always clone) or a builder's live token (mutate in place on
// nodes already owned by it).
//
// Returns the (possibly mutated-in-place) replacement for n and whether
// the push-down succeeded; on failure n is returned unchanged and the
// caller must grow height.
func pushDownRightSpine[T any](n *node[T], shift int, leaf *node[T], owner *token) (*node[T], bool) {
	lastIdx := n.length() - 1
	last := n.children[lastIdx]

	if shift == bitsPerLevel {
		// n's children are leaves.
		if last.length() == 0 {
			// Density-violation rule: the existing last child is already
			// under-full (length 0), so the branch would need relaxing
			// regardless — replacing it outright with a full leaf instead
			// keeps the branch dense.
			newN := forMutation(n, owner)
			newN.children[lastIdx] = leaf
			setSizes(newN, shift)
			return newN, true
		}
		if n.length() < nodeWidth {
			newN := forMutation(n, owner)
			newN.children = append(newN.children, leaf)
			setSizes(newN, shift)
			return newN, true
		}
		return n, false
	}

	// Above the parent-of-leaves level: recurse.
	if sub, ok := pushDownRightSpine(last, shift-bitsPerLevel, leaf, owner); ok {
		newN := forMutation(n, owner)
		newN.children[lastIdx] = sub
		setSizes(newN, shift)
		return newN, true
	}
	if n.length() < nodeWidth {
		newN := forMutation(n, owner)
		newN.children = append(newN.children, newPath(shift-bitsPerLevel, leaf, owner))
		setSizes(newN, shift)
		return newN, true
	}
	return n, false
}

// appendLeafToTrie implements spec.md §4.4: install a leaf into the trie
// rooted at (root, shift), returning the new (root, shift). Push, Insert
// and the builder pass full leaves; foldTailIntoTrie may pass a partial
// one.
func appendLeafToTrie[T any](root *node[T], shift int, leaf *node[T], owner *token) (*node[T], int) {
	if root == nil {
		return leaf, 0
	}
	if shift == 0 {
		// Root is itself a leaf: wrap both under a fresh branch, relaxed
		// if the old root leaf is not full.
		newRoot := newBranch([]*node[T]{root, leaf}, nil, owner)
		setSizes(newRoot, bitsPerLevel)
		return newRoot, bitsPerLevel
	}
	if newRoot, ok := pushDownRightSpine(root, shift, leaf, owner); ok {
		return newRoot, shift
	}
	// Every slot on the right spine is full: grow height.
	newRoot := newBranch([]*node[T]{root, newPath(shift, leaf, owner)}, nil, owner)
	setSizes(newRoot, shift+bitsPerLevel)
	return newRoot, shift + bitsPerLevel
}

// Push appends v, returning a new sequence.
func (s Sequence[T]) Push(v T) Sequence[T] {
	if s.tailLen < nodeWidth {
		newTail := make([]T, s.tailLen+1)
		copy(newTail, s.tail)
		newTail[s.tailLen] = v
		s.tail = newTail
		s.tailLen++
		s.cnt++
		return s
	}
	tracer().Debugf("tail full at %d, installing into trie", s.cnt)
	fullLeaf := newLeaf(s.tail, nil)
	newRoot, newShift := appendLeafToTrie(s.root, s.shift, fullLeaf, nil)
	s.root = newRoot
	s.shift = newShift
	s.tail = []T{v}
	s.tailLen = 1
	s.cnt++
	return s
}

// Pop drops the last element.
func (s Sequence[T]) Pop() (Sequence[T], error) {
	if s.cnt == 0 {
		return Sequence[T]{}, ErrEmptySequence
	}
	if s.tailLen > 0 {
		s.tail = s.tail[:s.tailLen-1]
		s.tailLen--
		s.cnt--
		return s, nil
	}
	// Tail empty: promote the trie's rightmost leaf, then drop its last
	// element (the element Pop is actually removing).
	newRoot, newShift, promoted := promoteTail(s.root, s.shift)
	s.root = newRoot
	s.shift = newShift
	s.tail = promoted[:len(promoted)-1]
	s.tailLen = len(promoted) - 1
	s.cnt--
	return s, nil
}

// PopFirst drops the first element.
func (s Sequence[T]) PopFirst() (Sequence[T], error) {
	if s.cnt == 0 {
		return Sequence[T]{}, ErrEmptySequence
	}
	return removeAt(s, 0)
}

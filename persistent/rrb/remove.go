package rrb

// removeTrie implements spec.md §4.12's single-pass point removal: drop
// residual index i from the subtree (n, shift), returning nil if the
// subtree becomes empty.
func removeTrie[T any](n *node[T], shift, i int) *node[T] {
	if n.leaf {
		if n.length() == 1 {
			return nil
		}
		values := make([]T, 0, nodeWidth)
		values = append(values, n.values[:i]...)
		values = append(values, n.values[i+1:]...)
		return newLeaf(values, nil)
	}

	slot, residual := locate(n, i, shift)
	childShift := shift - bitsPerLevel
	newChild := removeTrie(n.children[slot], childShift, residual)

	if newChild == nil {
		if n.length() == 1 {
			return nil
		}
		children := make([]*node[T], 0, nodeWidth)
		children = append(children, n.children[:slot]...)
		children = append(children, n.children[slot+1:]...)
		newN := newBranch(children, nil, nil)
		setSizes(newN, shift)
		return newN
	}

	children := make([]*node[T], len(n.children), nodeWidth)
	copy(children, n.children)
	children[slot] = newChild
	newN := newBranch(children, nil, nil)
	setSizes(newN, shift)
	return newN
}

// removeAt removes the element at absolute index i from s.
func removeAt[T any](s Sequence[T], i int) (Sequence[T], error) {
	if i < 0 || i >= s.cnt {
		return Sequence[T]{}, indexOutOfRange(i, s.cnt)
	}
	treeCount := s.treeCount()
	if i >= treeCount {
		off := i - treeCount
		newTail := make([]T, s.tailLen-1)
		copy(newTail, s.tail[:off])
		copy(newTail[off:], s.tail[off+1:])
		s.tail = newTail
		s.tailLen--
		s.cnt--
		return s, nil
	}
	assertThat(s.root != nil, "removeAt: index %d within tree range %d but root is nil", i, treeCount)
	newRoot := removeTrie(s.root, s.shift, i)
	newRoot, newShift := collapseHeight(newRoot, s.shift)
	s.root = newRoot
	s.shift = newShift
	s.cnt--
	return s, nil
}

// Remove returns a new sequence with the element at index i dropped.
func (s Sequence[T]) Remove(i int) (Sequence[T], error) {
	return removeAt(s, i)
}

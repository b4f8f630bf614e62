package rrb

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// CheckIntegrity verifies the structural invariants of spec.md §3/§8
// against s, returning ErrIntegrityViolation describing the first
// violation found, or nil if s is well-formed.
func CheckIntegrity[T any](s Sequence[T]) error {
	if s.tailLen < 0 || s.tailLen > nodeWidth {
		return fmt.Errorf("%w: tail length %d outside [0, %d]", ErrIntegrityViolation, s.tailLen, nodeWidth)
	}
	if s.tailLen != len(s.tail) {
		return fmt.Errorf("%w: tailLen %d does not match tail slice length %d", ErrIntegrityViolation, s.tailLen, len(s.tail))
	}
	treeCnt, err := checkNode(s.root, s.shift)
	if err != nil {
		return err
	}
	if treeCnt+s.tailLen != s.cnt {
		return fmt.Errorf("%w: count %d does not match tree(%d)+tail(%d)", ErrIntegrityViolation, s.cnt, treeCnt, s.tailLen)
	}
	if s.shift/bitsPerLevel > maxHeight {
		return fmt.Errorf("%w: shift %d exceeds MAX_HEIGHT*BITS", ErrIntegrityViolation, s.shift)
	}
	if s.root != nil && !s.root.leaf && s.root.length() == 1 {
		return fmt.Errorf("%w: root is an uncollapsed single-child branch", ErrIntegrityViolation)
	}
	return nil
}

func checkNode[T any](n *node[T], shift int) (int, error) {
	if n == nil {
		return 0, nil
	}
	if n.leaf {
		if len(n.values) > nodeWidth {
			return 0, fmt.Errorf("%w: leaf length %d exceeds B=%d", ErrIntegrityViolation, len(n.values), nodeWidth)
		}
		return len(n.values), nil
	}
	childShift := shift - bitsPerLevel
	sum := 0
	cumulative := make([]int, len(n.children))
	for i, c := range n.children {
		cc, err := checkNode(c, childShift)
		if err != nil {
			return 0, err
		}
		sum += cc
		cumulative[i] = sum
		if n.sizes == nil {
			if i < len(n.children)-1 && cc != 1<<shift {
				return 0, fmt.Errorf("%w: dense branch child %d has %d elements, want %d", ErrIntegrityViolation, i, cc, 1<<shift)
			}
			if c.relaxed() {
				return 0, fmt.Errorf("%w: dense branch has relaxed child %d", ErrIntegrityViolation, i)
			}
		}
	}
	if n.sizes != nil {
		if len(n.sizes) != len(n.children) {
			return 0, fmt.Errorf("%w: size table length %d, children %d", ErrIntegrityViolation, len(n.sizes), len(n.children))
		}
		for i := range cumulative {
			if cumulative[i] != n.sizes[i] {
				return 0, fmt.Errorf("%w: size table[%d]=%d, computed %d", ErrIntegrityViolation, i, n.sizes[i], cumulative[i])
			}
		}
	}
	return sum, nil
}

// Dump renders s's internal trie shape (dense/relaxed branches, size
// tables, tail occupancy) for diagnostics, generalizing the teacher's
// printVec/printNode test helpers into a supported function.
func Dump[T any](s Sequence[T]) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("sequence count=%d shift=%d tailLen=%d", s.cnt, s.shift, s.tailLen))
	if s.root != nil {
		dumpNode(tree.AddBranch("root"), s.root, s.shift)
	}
	if s.tailLen > 0 {
		tree.AddNode(fmt.Sprintf("tail%v", s.tail[:s.tailLen]))
	}
	return tree.String()
}

func dumpNode[T any](branch treeprint.Tree, n *node[T], shift int) {
	if n.leaf {
		branch.SetValue(fmt.Sprintf("leaf%v", n.values))
		return
	}
	kind := "dense"
	if n.sizes != nil {
		kind = fmt.Sprintf("relaxed%v", n.sizes)
	}
	branch.SetValue(fmt.Sprintf("branch[%d] %s", len(n.children), kind))
	for i, c := range n.children {
		dumpNode(branch.AddBranch(fmt.Sprintf("child %d", i)), c, shift-bitsPerLevel)
	}
}

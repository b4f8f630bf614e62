package rrb

// Builder is a transient, owner-tagged mutable view for O(N) bulk
// construction, per spec.md §4.14. It is not safe for concurrent use.
type Builder[T any] struct {
	owner   *token
	root    *node[T]
	shift   int
	fatTail []T
	fatCap  int
	fatLen  int
	cnt     int
}

type builderConfig struct {
	fatCap int
}

// Option configures a Builder at construction time.
type Option struct {
	apply func(*builderConfig)
}

// WithCapacity sets the builder's fat-tail capacity, which must be a
// positive multiple of B. The default is B; a typical bulk-load value is
// much larger (e.g. 1024).
func WithCapacity(capacity int) Option {
	return Option{apply: func(c *builderConfig) { c.fatCap = capacity }}
}

// NewBuilder returns a fresh, empty builder.
func NewBuilder[T any](opts ...Option) (*Builder[T], error) {
	cfg := builderConfig{fatCap: nodeWidth}
	for _, o := range opts {
		o.apply(&cfg)
	}
	if cfg.fatCap <= 0 || cfg.fatCap%nodeWidth != 0 {
		return nil, invalidBuilderCapacity(cfg.fatCap)
	}
	return &Builder[T]{owner: &token{}, fatTail: make([]T, 0, cfg.fatCap), fatCap: cfg.fatCap}, nil
}

// FromSequence returns a transient copy of seq: O(1) on the trie (shared
// by reference until the builder mutates it), O(tailLen) on the tail.
func FromSequence[T any](seq Sequence[T]) *Builder[T] {
	b := &Builder[T]{owner: &token{}, root: seq.root, shift: seq.shift, fatCap: nodeWidth}
	b.fatTail = make([]T, seq.tailLen, nodeWidth)
	copy(b.fatTail, seq.tail[:seq.tailLen])
	b.fatLen = seq.tailLen
	b.cnt = seq.cnt
	return b
}

// Count returns the number of elements currently held by b.
func (b *Builder[T]) Count() int {
	return b.cnt
}

func (b *Builder[T]) treeCount() int {
	return b.cnt - b.fatLen
}

// At returns the element at index i.
func (b *Builder[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= b.cnt {
		return zero, indexOutOfRange(i, b.cnt)
	}
	if i >= b.treeCount() {
		return b.fatTail[i-b.treeCount()], nil
	}
	n := b.root
	shift := b.shift
	for shift > 0 {
		slot, residual := locate(n, i, shift)
		n = n.children[slot]
		i = residual
		shift -= bitsPerLevel
	}
	return n.values[i], nil
}

// Set mutates index i in place, cloning under the builder's owner token
// only where a node is not already owned by it.
func (b *Builder[T]) Set(i int, v T) error {
	if i < 0 || i >= b.cnt {
		return indexOutOfRange(i, b.cnt)
	}
	if i >= b.treeCount() {
		b.fatTail[i-b.treeCount()] = v
		return nil
	}
	newRoot := forMutation(b.root, b.owner)
	n := newRoot
	shift := b.shift
	for shift > 0 {
		slot, residual := locate(n, i, shift)
		child := forMutation(n.children[slot], b.owner)
		n.children[slot] = child
		n = child
		i = residual
		shift -= bitsPerLevel
	}
	n.values[i] = v
	b.root = newRoot
	return nil
}

// flushFatTail chunks the fat tail into B-sized full leaves and installs
// them into the trie under the builder's owner token, per spec.md §4.3's
// fat-tail variant.
func (b *Builder[T]) flushFatTail() {
	for off := 0; off+nodeWidth <= b.fatLen; off += nodeWidth {
		values := make([]T, nodeWidth)
		copy(values, b.fatTail[off:off+nodeWidth])
		leaf := newLeaf(values, b.owner)
		b.root, b.shift = appendLeafToTrie(b.root, b.shift, leaf, b.owner)
	}
	b.fatTail = b.fatTail[:0]
	b.fatLen = 0
}

// Push appends v in place.
func (b *Builder[T]) Push(v T) {
	if b.fatLen == b.fatCap {
		tracer().Debugf("fat tail at capacity %d, flushing", b.fatCap)
		b.flushFatTail()
	}
	b.fatTail = append(b.fatTail, v)
	b.fatLen++
	b.cnt++
}

// ToImmutable freezes b's current contents into a Sequence. b itself
// becomes a fresh transient builder over the same contents: its owner
// token is replaced, so any further mutation path-copies rather than
// disturbing the frozen output, per spec.md §4.14 and the Design Notes'
// "Builder ownership" section.
func (b *Builder[T]) ToImmutable() Sequence[T] {
	root, shift := b.root, b.shift
	fullCount := (b.fatLen / nodeWidth) * nodeWidth
	for off := 0; off < fullCount; off += nodeWidth {
		values := make([]T, nodeWidth)
		copy(values, b.fatTail[off:off+nodeWidth])
		leaf := newLeaf(values, b.owner)
		root, shift = appendLeafToTrie(root, shift, leaf, b.owner)
	}
	residual := b.fatLen - fullCount
	tail := make([]T, residual)
	copy(tail, b.fatTail[fullCount:b.fatLen])

	seq := Sequence[T]{root: root, shift: shift, tail: tail, tailLen: residual, cnt: b.cnt}

	// Swap the owner token: any node still tagged with the old token is
	// now foreign to this builder and will be path-copied, not mutated,
	// by future operations — even though it remains reachable from seq.
	b.owner = &token{}
	b.root, b.shift = root, shift
	b.fatTail = append(b.fatTail[:0], tail...)
	b.fatLen = residual
	return seq
}

// FromSlice builds a sequence from xs via a builder, per the from(iter)
// external interface operation.
func FromSlice[T any](xs []T, opts ...Option) (Sequence[T], error) {
	b, err := NewBuilder[T](opts...)
	if err != nil {
		return Sequence[T]{}, err
	}
	for _, x := range xs {
		b.Push(x)
	}
	return b.ToImmutable(), nil
}

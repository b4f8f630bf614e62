package rrb

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func buildRange(t *testing.T, n int) Sequence[int] {
	t.Helper()
	s := Empty[int]()
	for i := 0; i < n; i++ {
		s = s.Push(i)
	}
	return s
}

// S1: push + random index.
func TestS1PushAndRandomIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rrbvec.rrb")
	defer teardown()

	s := buildRange(t, 10000)
	require.Equal(t, 10000, s.Count())
	v, err := s.At(0)
	require.NoError(t, err)
	require.Equal(t, 0, v)
	v, err = s.At(5000)
	require.NoError(t, err)
	require.Equal(t, 5000, v)
	v, err = s.At(9999)
	require.NoError(t, err)
	require.Equal(t, 9999, v)
	require.NoError(t, CheckIntegrity(s))
}

// S2: set is non-destructive.
func TestS2SetNonDestructive(t *testing.T) {
	s1 := Empty[int]().Push(1).Push(2).Push(3)
	s2, err := s1.Set(1, 999)
	require.NoError(t, err)

	v1, _ := s1.At(1)
	require.Equal(t, 2, v1)
	v2, _ := s2.At(1)
	require.Equal(t, 999, v2)
	require.False(t, Equal(s1, s2))
}

// S3: concat preserves order.
func TestS3ConcatPreservesOrder(t *testing.T) {
	a, err := FromSlice(rangeSlice(0, 2000))
	require.NoError(t, err)
	b, err := FromSlice(rangeSlice(2000, 4000))
	require.NoError(t, err)

	c := a.Concat(b)
	require.Equal(t, 4000, c.Count())
	assertAt(t, c, 0, 0)
	assertAt(t, c, 1999, 1999)
	assertAt(t, c, 2000, 2000)
	assertAt(t, c, 3999, 3999)
	require.NoError(t, CheckIntegrity(c))
}

// S4: slice round-trip.
func TestS4SliceRoundTrip(t *testing.T) {
	s, err := FromSlice(rangeSlice(0, 100))
	require.NoError(t, err)

	tslice, err := s.Slice(2, 5)
	require.NoError(t, err)
	require.Equal(t, 5, tslice.Count())
	assertAt(t, tslice, 0, 2)
	assertAt(t, tslice, 4, 6)
	require.NoError(t, CheckIntegrity(tslice))
}

// S5: split/concat identity.
func TestS5SplitConcatIdentity(t *testing.T) {
	s, err := FromSlice(rangeSlice(0, 500))
	require.NoError(t, err)

	for _, i := range []int{0, 1, 31, 32, 33, 250, 499, 500} {
		l, r, err := s.Split(i)
		require.NoError(t, err)
		require.NoError(t, CheckIntegrity(l))
		require.NoError(t, CheckIntegrity(r))
		joined := l.Concat(r)
		require.True(t, Equal(s, joined), "split/concat identity failed at i=%d", i)
	}
}

// S6: insert then remove.
func TestS6InsertThenRemove(t *testing.T) {
	s, err := FromSlice(rangeSlice(0, 1000))
	require.NoError(t, err)

	tseq, err := s.Insert(4, 3)
	require.NoError(t, err)
	require.Equal(t, 1001, tseq.Count())
	assertAt(t, tseq, 4, 3)
	assertAt(t, tseq, 5, 4)

	back, err := tseq.Remove(4)
	require.NoError(t, err)
	require.True(t, Equal(s, back))
}

// S7: pathological relaxed indexing ("time bomb").
func TestS7PathologicalRelaxedIndexing(t *testing.T) {
	s, err := FromSlice(rangeSlice(0, 1025))
	require.NoError(t, err)

	sliced, err := s.Slice(0, 993)
	require.NoError(t, err)
	require.NoError(t, CheckIntegrity(sliced))

	pushed := make([]int, 33)
	for i := 0; i < 33; i++ {
		v := 100000 + i
		pushed[i] = v
		sliced = sliced.Push(v)
	}
	require.NoError(t, CheckIntegrity(sliced))

	got, err := sliced.At(1000)
	require.NoError(t, err)
	require.Equal(t, pushed[7], got)
}

func rangeSlice(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func assertAt(t *testing.T, s Sequence[int], i, want int) {
	t.Helper()
	got, err := s.At(i)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

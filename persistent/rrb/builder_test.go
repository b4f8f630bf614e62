package rrb

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestBuilderEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rrbvec.builder")
	defer teardown()

	xs := rangeSlice(0, 5000)
	for _, cap := range []int{nodeWidth, nodeWidth * 4, nodeWidth * 32} {
		s, err := FromSlice(xs, WithCapacity(cap))
		require.NoError(t, err)
		require.Equal(t, len(xs), s.Count())
		for _, i := range []int{0, 1, 17, 4999} {
			assertAt(t, s, i, xs[i])
		}
		require.NoError(t, CheckIntegrity(s))
	}
}

func TestBuilderInvalidCapacity(t *testing.T) {
	_, err := NewBuilder[int](WithCapacity(0))
	require.ErrorIs(t, err, ErrInvalidBuilderCapacity)

	_, err = NewBuilder[int](WithCapacity(nodeWidth + 1))
	require.ErrorIs(t, err, ErrInvalidBuilderCapacity)
}

func TestBuilderSetMutatesInPlaceUnderOwner(t *testing.T) {
	b, err := NewBuilder[int]()
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		b.Push(i)
	}
	require.NoError(t, b.Set(150, -1))
	v, err := b.At(150)
	require.NoError(t, err)
	require.Equal(t, -1, v)

	seq := b.ToImmutable()
	require.Equal(t, 200, seq.Count())
	got, _ := seq.At(150)
	require.Equal(t, -1, got)

	// The builder is now a fresh transient over the same contents.
	require.Equal(t, 200, b.Count())
	require.NoError(t, b.Set(150, -2))
	reread, _ := b.At(150)
	require.Equal(t, -2, reread)

	// Earlier frozen sequence is unaffected by further builder mutation.
	still, _ := seq.At(150)
	require.Equal(t, -1, still)
}

func TestFromSequenceRoundTrip(t *testing.T) {
	s, err := FromSlice(rangeSlice(0, 300))
	require.NoError(t, err)
	b := FromSequence(s)
	require.Equal(t, 300, b.Count())
	for _, i := range []int{0, 150, 299} {
		v, err := b.At(i)
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
}

func TestEmptySequenceErrors(t *testing.T) {
	s := Empty[int]()
	require.Equal(t, 0, s.Count())
	_, err := s.At(0)
	require.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = s.Pop()
	require.True(t, errors.Is(err, ErrEmptySequence))
	_, err = s.PopFirst()
	require.True(t, errors.Is(err, ErrEmptySequence))
}

func TestPushPopInverse(t *testing.T) {
	s := buildRange(t, 2000)
	popped, err := s.Push(12345).Pop()
	require.NoError(t, err)
	require.True(t, Equal(s, popped))

	withPush := s.Push(12345)
	v, err := withPush.At(withPush.Count() - 1)
	require.NoError(t, err)
	require.Equal(t, 12345, v)
}

func TestRoundTripIdentity(t *testing.T) {
	s := buildRange(t, 777)
	for _, i := range []int{0, 1, 400, 776} {
		v, err := s.At(i)
		require.NoError(t, err)
		updated, err := s.Set(i, v)
		require.NoError(t, err)
		require.True(t, Equal(s, updated))
	}
}

func TestCollectAndAll(t *testing.T) {
	s := buildRange(t, 150)
	out := Collect(s)
	require.Len(t, out, 150)
	for i, v := range out {
		require.Equal(t, i, v)
	}
	count := 0
	for i, v := range s.All() {
		require.Equal(t, i, v)
		count++
	}
	require.Equal(t, 150, count)
}

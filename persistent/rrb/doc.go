/*
Package rrb implements an immutable, persistent indexed sequence backed by a
Relaxed-Radix-Balanced (RRB) trie with a tail buffer for append amortization,
plus a transient (owner-tagged) builder for O(N) bulk construction.

A Sequence behaves like an immutable slice: every "modification" (set, push,
insert, remove, slice, split, concat) returns a new Sequence, sharing as much
of the old trie as possible with the original. Most of the structure is
shared transparently between versions.

Sequences are safe to read concurrently once constructed. A Builder is not:
it is exclusively owned by the code path holding it, and mutates its owned
nodes in place until frozen via ToImmutable.

Status

Generics and range-over-func iterators throughout; requires Go 1.23 or later.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package rrb

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rrbvec.rrb'.
func tracer() tracing.Trace {
	return tracing.Select("rrbvec.rrb")
}

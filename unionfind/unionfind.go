// Package unionfind implements a weighted union-find (disjoint-set) structure
// over the integers 0..N-1, extended with a per-element circular "next"
// pointer so that the members of a set can be enumerated in O(size) without
// scanning the parent array.
//
// Every Union call must preserve the next-cycle invariant: swapping the two
// representatives' next pointers joins their circular lists into one. Callers
// that bypass Union and mutate parent/rank directly would violate this and
// produce undefined enumeration order from Members.
package unionfind

import "errors"

// ErrOutOfRange indicates an element index outside [0, N).
var ErrOutOfRange = errors.New("unionfind: index out of range")

// UnionFind is a disjoint-set structure with size tracking, union-by-rank,
// full path compression, and cyclic-list set enumeration.
type UnionFind struct {
	parent []int
	rank   []int
	size   []int
	next   []int
	nsets  int
}

// New creates a UnionFind over n singleton sets {0}, {1}, ..., {n-1}.
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
		next:   make([]int, n),
		nsets:  n,
	}
	for i := 0; i < n; i++ {
		uf.parent[i] = i
		uf.size[i] = 1
		uf.next[i] = i
	}
	return uf
}

// Find returns the representative of i's set, compressing the path.
func (uf *UnionFind) Find(i int) int {
	if uf.parent[i] != i {
		uf.parent[i] = uf.Find(uf.parent[i])
	}
	return uf.parent[i]
}

// SameSet reports whether i and j belong to the same set.
func (uf *UnionFind) SameSet(i, j int) bool {
	return uf.Find(i) == uf.Find(j)
}

// SetSize returns the size of the set containing i.
func (uf *UnionFind) SetSize(i int) int {
	return uf.size[uf.Find(i)]
}

// NumSets returns the current number of disjoint sets.
func (uf *UnionFind) NumSets() int {
	return uf.nsets
}

// Union merges the sets containing i and j by rank, maintaining size_of_set
// and swapping the two next pointers so their circular member lists merge
// into one. No-op if i and j are already in the same set.
func (uf *UnionFind) Union(i, j int) {
	x, y := uf.Find(i), uf.Find(j)
	if x == y {
		return
	}
	if uf.rank[x] > uf.rank[y] {
		x, y = y, x
	}
	uf.parent[x] = y
	if uf.rank[x] == uf.rank[y] {
		uf.rank[y]++
	}
	uf.size[y] += uf.size[x]
	uf.nsets--

	uf.next[x], uf.next[y] = uf.next[y], uf.next[x]
}

// Members returns every element in i's set, walking the circular next list
// for exactly SetSize(i) steps.
func (uf *UnionFind) Members(i int) []int {
	root := uf.Find(i)
	n := uf.size[root]
	out := make([]int, 0, n)
	cur := i
	for k := 0; k < n; k++ {
		out = append(out, cur)
		cur = uf.next[cur]
	}
	return out
}

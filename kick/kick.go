// Package kick implements the double-bridge-style multi-segment
// reconnection perturbation: given a tour and a strength s, it deletes s
// non-adjacent outgoing arcs and reconnects the s resulting loose ends with
// s brand-new arcs, guarded by a union-find so the result is provably a
// single Hamiltonian cycle again, never a sub-cycle.
package kick

import (
	"errors"
	"math/rand"

	"github.com/dariolupo/tsplab/tour"
	"github.com/dariolupo/tsplab/unionfind"
)

// ErrStrengthOutOfRange indicates strength is outside [2, n/2).
var ErrStrengthOutOfRange = errors.New("kick: strength must satisfy 2 <= strength < n/2")

// Run perturbs t in place with the given strength, using rng for every
// random choice. t must already be a valid single-cycle tour.
func Run(t *tour.Tour, strength int, rng *rand.Rand) error {
	n := t.N()
	if strength < 2 || strength >= n/2 {
		return ErrStrengthOutOfRange
	}

	selected := selectNodes(t.Succ, n, strength, rng)
	sortByReachability(t.Succ, selected)

	embsize := 2 * strength
	nodeOf := make([]int, embsize) // map[]: even -> selected node, odd -> its old successor
	for i, x := range selected {
		nodeOf[2*i] = x
		nodeOf[2*i+1] = t.Succ[x]
	}
	for _, x := range selected {
		t.Succ[x] = -1
	}

	embSucc := make([]int, embsize)
	for i := range embSucc {
		embSucc[i] = -1
	}
	uf := unionfind.New(embsize)
	target := make([]bool, embsize)
	for i := range target {
		target[i] = true
	}
	for i := 1; i < embsize; i += 2 {
		next := (i + 1) % embsize
		embSucc[i] = next
		uf.Union(i, next)
	}

	for iter := 0; iter < strength; iter++ {
		isLast := iter == strength-1

		a := pickRandom(rng, legalSources(embSucc))
		target[a] = false

		b := pickRandom(rng, legalTargets(uf, target, a, isLast))
		target[b] = false

		if embSucc[b] == -1 {
			u := farthestInSet(uf, embSucc, b, embsize)
			reversePathSlice(embSucc, u, b)
			embSucc[u] = -1
			target[u] = true

			t.ReversePath(nodeOf[u], nodeOf[b])
			t.Succ[nodeOf[u]] = -1
		}

		embSucc[a] = b
		uf.Union(a, b)
		t.Succ[nodeOf[a]] = nodeOf[b]
	}

	return nil
}

// selectNodes picks `strength` distinct nodes uniformly at random subject to
// no two being equal or succ-adjacent to one another.
func selectNodes(succ []int, n, strength int, rng *rand.Rand) []int {
	selected := make([]int, 0, strength)
	for len(selected) < strength {
		c := rng.Intn(n)
		valid := true
		for _, s := range selected {
			if c == s || c == succ[s] || succ[c] == s {
				valid = false
				break
			}
		}
		if valid {
			selected = append(selected, c)
		}
	}
	return selected
}

// reachable counts hops from `from` to `to` following succ, used to rank
// selected nodes by tour order from the anchor (node 0).
func reachable(succ []int, from, to int) int {
	if from == to {
		return 0
	}
	cnt := 0
	cur := from
	for cur != to {
		cur = succ[cur]
		cnt++
		if cnt > len(succ) {
			return -1
		}
	}
	return cnt
}

func sortByReachability(succ []int, selected []int) {
	lengths := make(map[int]int, len(selected))
	for _, x := range selected {
		lengths[x] = reachable(succ, 0, x)
	}
	// simple insertion sort: small slices (strength < n/2), stable enough.
	for i := 1; i < len(selected); i++ {
		v := selected[i]
		j := i - 1
		for j >= 0 && lengths[selected[j]] > lengths[v] {
			selected[j+1] = selected[j]
			j--
		}
		selected[j+1] = v
	}
}

func legalSources(embSucc []int) []int {
	var out []int
	for i, s := range embSucc {
		if s == -1 {
			out = append(out, i)
		}
	}
	return out
}

func legalTargets(uf *unionfind.UnionFind, target []bool, a int, isLast bool) []int {
	var out []int
	for i, ok := range target {
		if !ok {
			continue
		}
		if !isLast && uf.SameSet(a, i) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func pickRandom(rng *rand.Rand, candidates []int) int {
	return candidates[rng.Intn(len(candidates))]
}

// farthestInSet finds, among the embedded positions in b's union-find set,
// the one reachable from (or reaching) b via the longest embedded-path
// distance — the other loose end of b's current path component.
func farthestInSet(uf *unionfind.UnionFind, embSucc []int, b, embsize int) int {
	maxLen := 0
	u := b
	for i := 0; i < embsize; i++ {
		if !uf.SameSet(b, i) {
			continue
		}
		fwd := reachableBounded(embSucc, b, i, embsize)
		bwd := reachableBounded(embSucc, i, b, embsize)
		length := fwd
		if bwd > length {
			length = bwd
		}
		if length > maxLen {
			maxLen = length
			u = i
		}
	}
	return u
}

// reachableBounded is like reachable but operates on a possibly-broken path
// (not a full cycle): it returns -1 if to is not reached within bound hops
// or a dead end (-1 entry) is hit first.
func reachableBounded(succ []int, from, to, bound int) int {
	if from == to {
		return 0
	}
	cnt := 0
	cur := from
	for cur != to {
		if cnt >= bound {
			return -1
		}
		next := succ[cur]
		if next == -1 {
			return -1
		}
		cur = next
		cnt++
	}
	return cnt
}

// reversePathSlice reverses the chain u -> ... -> b within an arbitrary
// successor-like slice (used for the embedded array, which is a path, not a
// full permutation cycle like tour.Tour).
func reversePathSlice(succ []int, u, v int) {
	path := []int{u}
	cur := u
	for cur != v {
		cur = succ[cur]
		path = append(path, cur)
	}
	for k := len(path) - 1; k > 0; k-- {
		succ[path[k]] = path[k-1]
	}
}

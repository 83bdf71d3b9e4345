package goanf

import "slices"

// SPoly returns the S-polynomial of lhs and rhs. Both operands are scaled
// by the complement of their lead within lcm(lead(lhs), lead(rhs)), so
// the shared leading term cancels in the sum. SPoly is False if either
// operand is False.
func SPoly(c *Cache, f *Forest, lhs, rhs NodeID) NodeID {
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	return spoly(c, f, lhs, rhs)
}

func spoly(c *Cache, f *Forest, lhs, rhs NodeID) NodeID {
	lhs, rhs = minmax(lhs, rhs)
	if lhs == False {
		return False
	}

	key := pair{lhs, rhs}
	if r, ok := c.spoly.get(key); ok {
		return r
	}

	ll, rl := lead(c, f, lhs), lead(c, f, rhs)
	m := lcm(c, f, ll, rl)
	result := add(c, f,
		multiply(c, f, lhs, divide(c, f, m, ll), f.sparsity),
		multiply(c, f, rhs, divide(c, f, m, rl), f.sparsity))

	return c.spoly.put(key, result)
}

// NormalForm top-reduces reductee against basis.
//
// For each basis element x in order, NormalForm cancels the highest term
// of the reductee divisible by lead(x) by adding the matching multiple of
// x, and repeats until lead(x) divides no term. Passes over the basis
// repeat until one pass changes nothing. A zero reductee returns
// immediately and zero basis elements are ignored.
//
// The result depends on the order of basis unless basis is a reduced
// Gröbner basis.
func NormalForm(c *Cache, f *Forest, reductee NodeID, basis []NodeID) NodeID {
	c.bind(f)
	f.check(reductee)
	for _, x := range basis {
		f.check(x)
	}
	return normalForm(c, f, reductee, basis)
}

func normalForm(c *Cache, f *Forest, p NodeID, basis []NodeID) NodeID {
	for changed := true; changed; {
		changed = false
		for _, x := range basis {
			if p == False {
				return False
			}
			if x == False {
				continue
			}

			lx := lead(c, f, x)
			for p != False {
				q := divide(c, f, p, lx)
				if q == False {
					break
				}
				p = add(c, f, p, multiply(c, f, lead(c, f, q), x, f.sparsity))
				changed = true
			}
		}
	}
	return p
}

// ReduceBasis self-reduces basis: each element is replaced by its normal
// form against the others until a full pass changes nothing. Zero and
// duplicate elements are dropped. The result is sorted by Compare.
func ReduceBasis(c *Cache, f *Forest, basis []NodeID) []NodeID {
	c.bind(f)
	for _, x := range basis {
		f.check(x)
	}
	return reduceBasis(c, f, basis)
}

func reduceBasis(c *Cache, f *Forest, basis []NodeID) []NodeID {
	set := distinctNonZero(basis)

	for restart := true; restart; {
		restart = false
		for i := 0; i < len(set); i++ {
			candidate := set[i]
			rest := slices.Delete(slices.Clone(set), i, i+1)

			r := normalForm(c, f, candidate, rest)
			if r == candidate {
				continue
			}

			if r == False || slices.Contains(rest, r) {
				set = rest
			} else {
				set[i] = r
			}
			restart = true
			break
		}
	}

	sortBasis(c, f, set)
	return set
}

// ReducedGrobnerBasis minimizes basis, dropping every element whose lead
// is divisible by the lead of another element, then self-reduces the rest
// with ReduceBasis. Applied to a Gröbner basis, the result is the reduced
// Gröbner basis of the ideal.
func ReducedGrobnerBasis(c *Cache, f *Forest, basis []NodeID) []NodeID {
	c.bind(f)
	for _, x := range basis {
		f.check(x)
	}

	pending := distinctNonZero(basis)
	var kept []NodeID
	for len(pending) > 0 {
		last := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		l := lead(c, f, last)
		redundant := func(g NodeID) bool {
			return divides(c, f, lead(c, f, g), l)
		}
		if slices.ContainsFunc(pending, redundant) || slices.ContainsFunc(kept, redundant) {
			continue
		}
		kept = append(kept, last)
	}

	return reduceBasis(c, f, kept)
}

// IsGrobnerBasis reports whether the S-polynomial of every pair of polys
// reduces to zero against polys. It stops at the first pair that does not.
func IsGrobnerBasis(c *Cache, f *Forest, polys []NodeID) bool {
	c.bind(f)
	for _, x := range polys {
		f.check(x)
	}

	for i := range polys {
		for j := i + 1; j < len(polys); j++ {
			if normalForm(c, f, spoly(c, f, polys[i], polys[j]), polys) != False {
				return false
			}
		}
	}
	return true
}

// distinctNonZero copies ids without zeros and repeats, keeping first
// occurrences in order.
func distinctNonZero(ids []NodeID) []NodeID {
	seen := make(map[NodeID]struct{}, len(ids))
	out := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if id == False {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortBasis(c *Cache, f *Forest, basis []NodeID) {
	slices.SortFunc(basis, func(a, b NodeID) int {
		return compare(c, f, a, b)
	})
}

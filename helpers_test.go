package goanf

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// poly builds the sum of the given monomials, each listed by its variables.
// An empty monomial is the constant 1.
func poly(c *Cache, f *Forest, terms ...[]Variable) NodeID {
	p := False
	for _, t := range terms {
		p = Add(c, f, p, f.Monomial(t...))
	}
	return p
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// randomPoly draws a polynomial over variables [0, vars) with up to terms
// monomials of degree at most degree.
func randomPoly(rng *rand.Rand, c *Cache, f *Forest, vars, terms, degree int) NodeID {
	p := False
	for range 1 + rng.IntN(terms) {
		var m []Variable
		for range rng.IntN(degree + 1) {
			m = append(m, Variable(rng.IntN(vars)))
		}
		p = Add(c, f, p, f.Monomial(m...))
	}
	return p
}

// requirePanicIs runs fn and requires it to panic with an error matching
// target.
func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	fn()
}

// allAssignments enumerates every assignment of variables [0, vars).
func allAssignments(vars int) []Assignment {
	out := make([]Assignment, 0, 1<<vars)
	for bits := uint64(0); bits < 1<<vars; bits++ {
		out = append(out, AssignmentFromBits(0, bits, vars))
	}
	return out
}

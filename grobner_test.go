package goanf

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPoly(t *testing.T) {
	c := NewCache()
	f := NewForest()
	a := Add(c, f, f.Term(0), True)
	b := Add(c, f, f.Term(1), True)

	// lcm(x0, x1) = x0*x1: x1*(x0 + 1) + x0*(x1 + 1) = x0 + x1
	assert.Equal(t, Add(c, f, f.Term(0), f.Term(1)), SPoly(c, f, a, b))
	assert.Equal(t, SPoly(c, f, a, b), SPoly(c, f, b, a))
	assert.Equal(t, False, SPoly(c, f, False, a))
	assert.Equal(t, False, SPoly(c, f, a, a))
}

func TestNormalForm(t *testing.T) {
	c := NewCache()
	f := NewForest()

	p := poly(c, f, []Variable{0, 1}, []Variable{2})
	assert.Equal(t, poly(c, f, []Variable{1}, []Variable{2}), NormalForm(c, f, p, []NodeID{Add(c, f, f.Term(0), True)}))

	// Reduction repeats against one element until its lead divides no term.
	q := poly(c, f, []Variable{0, 1}, []Variable{0, 2}, []Variable{0})
	assert.Equal(t, False, NormalForm(c, f, q, []NodeID{f.Term(0)}))

	// A zero basis element is skipped.
	assert.Equal(t, f.Term(2), NormalForm(c, f, f.Term(2), []NodeID{False, f.Term(1)}))
}

func TestNormalFormEdgeCases(t *testing.T) {
	c := NewCache()
	f := NewForest()
	rng := newRand(3)

	for range 20 {
		p := randomPoly(rng, c, f, 5, 5, 3)
		basis := []NodeID{randomPoly(rng, c, f, 5, 3, 2), randomPoly(rng, c, f, 5, 3, 2)}

		assert.Equal(t, p, NormalForm(c, f, p, nil))
		assert.Equal(t, False, NormalForm(c, f, False, basis))
	}
}

func TestSlimGrobnerBasisScenario(t *testing.T) {
	for _, maxReduceSet := range []int{0, 1, 2, 3} {
		c := NewCache()
		f := NewForest()
		x, y, z := f.Term(0), f.Term(1), f.Term(2)
		system := []NodeID{x, Add(c, f, z, y), Add(c, f, Multiply(c, f, z, x), y)}

		res := SlimGrobnerBasis(c, f, system, maxReduceSet, 0)
		require.NoError(t, res.Err())
		require.True(t, res.Complete)
		assert.True(t, IsGrobnerBasis(c, f, res.Basis))

		basis := ReducedGrobnerBasis(c, f, res.Basis)
		assert.Equal(t, []NodeID{x, y, z}, basis, "max reduce set %d", maxReduceSet)
		assert.True(t, IsGrobnerBasis(c, f, basis))
	}
}

func TestSlimGrobnerBasisIncomplete(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewCache()
	f := NewForest(WithLogger(logger))
	x, y, z := f.Term(0), f.Term(1), f.Term(2)
	system := []NodeID{x, Add(c, f, z, y), Add(c, f, Multiply(c, f, z, x), y)}

	res := SlimGrobnerBasis(c, f, system, 1, 1)
	assert.False(t, res.Complete)
	assert.Equal(t, 1, res.Iterations)
	assert.ErrorIs(t, res.Err(), ErrIncomplete)
	assert.NotEmpty(t, res.Basis)
	assert.Contains(t, buf.String(), "grobner basis incomplete")
}

func TestSlimGrobnerBasisTrivialInputs(t *testing.T) {
	c := NewCache()
	f := NewForest()

	res := SlimGrobnerBasis(c, f, nil, 0, 0)
	assert.True(t, res.Complete)
	assert.Empty(t, res.Basis)

	res = SlimGrobnerBasis(c, f, []NodeID{False, f.Term(4), f.Term(4)}, 0, 0)
	assert.True(t, res.Complete)
	assert.Equal(t, []NodeID{f.Term(4)}, res.Basis)

	// x0 + 1 and x0 generate the whole ring.
	res = SlimGrobnerBasis(c, f, []NodeID{f.Term(0), Add(c, f, f.Term(0), True)}, 0, 0)
	require.True(t, res.Complete)
	assert.Equal(t, []NodeID{True}, ReducedGrobnerBasis(c, f, res.Basis))
}

func TestGrobnerCorrectness(t *testing.T) {
	ctx := context.Background()

	for seed := range uint64(60) {
		c := NewCache()
		f := NewForest()
		rng := newRand(100 + seed)

		vars := 3 + rng.IntN(3)
		system := make([]NodeID, 2+rng.IntN(3))
		for i := range system {
			system[i] = randomPoly(rng, c, f, vars, 5, 3)
		}
		maxReduceSet := int(seed % 4)

		res := SlimGrobnerBasis(c, f, system, maxReduceSet, 0)
		require.True(t, res.Complete)
		require.True(t, IsGrobnerBasis(c, f, res.Basis), "seed %d", seed)

		reduced := ReducedGrobnerBasis(c, f, res.Basis)
		require.True(t, IsGrobnerBasis(c, f, reduced), "seed %d", seed)

		// Every system member reduces to zero against the basis.
		for _, p := range system {
			require.Equal(t, False, NormalForm(c, f, p, reduced), "seed %d", seed)
		}

		// Completion keeps the zero set.
		all := make([]Variable, vars)
		for i := range all {
			all[i] = Variable(i)
		}
		want, err := Zeros(ctx, c, f, system, all, 0)
		require.NoError(t, err)
		got, err := Zeros(ctx, c, f, reduced, all, 0)
		require.NoError(t, err)
		require.Equal(t, len(want), len(got), "seed %d", seed)
		for i := range want {
			require.True(t, want[i].Equal(got[i]), "seed %d", seed)
		}
	}
}

func TestReduceBasis(t *testing.T) {
	c := NewCache()
	f := NewForest()
	x0, x1 := f.Term(0), f.Term(1)

	assert.Equal(t, []NodeID{x0, x1}, ReduceBasis(c, f, []NodeID{Add(c, f, x0, x1), x1}))
	assert.Equal(t, []NodeID{x0}, ReduceBasis(c, f, []NodeID{x0, False, x0}))
	assert.Equal(t, []NodeID{x0}, ReduceBasis(c, f, []NodeID{x0, Multiply(c, f, x0, x1)}))
	assert.Empty(t, ReduceBasis(c, f, nil))
}

func TestReducedGrobnerBasisMinimizes(t *testing.T) {
	c := NewCache()
	f := NewForest()
	x0, x1 := f.Term(0), f.Term(1)

	// x0*x1 + x1 is redundant next to x0 and x1.
	basis := []NodeID{x0, x1, poly(c, f, []Variable{0, 1}, []Variable{1})}
	assert.Equal(t, []NodeID{x0, x1}, ReducedGrobnerBasis(c, f, basis))
}

func TestIsGrobnerBasis(t *testing.T) {
	c := NewCache()
	f := NewForest()

	assert.True(t, IsGrobnerBasis(c, f, nil))
	assert.True(t, IsGrobnerBasis(c, f, []NodeID{f.Term(0), f.Term(1)}))

	// The S-polynomial x0 + x1 of these two does not reduce to zero.
	a := Add(c, f, f.Term(0), True)
	b := Add(c, f, f.Term(1), True)
	assert.False(t, IsGrobnerBasis(c, f, []NodeID{f.Monomial(0, 1), Multiply(c, f, a, b)}))
	assert.False(t, IsGrobnerBasis(c, f, []NodeID{Add(c, f, f.Monomial(0, 1), f.Term(0)), Add(c, f, f.Monomial(0, 2), f.Term(2))}))
}

func TestSlimGrobnerBasisRecordsReductions(t *testing.T) {
	c := NewCache()
	f := NewForest()
	rng := newRand(42)

	total := 0
	for range 10 {
		system := []NodeID{
			randomPoly(rng, c, f, 5, 5, 3),
			randomPoly(rng, c, f, 5, 5, 3),
			randomPoly(rng, c, f, 5, 5, 3),
		}
		res := SlimGrobnerBasis(c, f, system, 2, 0)
		require.True(t, res.Complete)
		for name, n := range res.Reductions {
			assert.Contains(t, []string{"lead_division", "group_reduction", "replacement"}, name)
			total += n
		}
	}
	assert.Positive(t, total)
}

func TestSlimGrobnerBasisCountsTruncatedPairs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewCache()
	f := NewForest(WithSparsity(2), WithLogger(logger))

	// The leads x0*x1 and x1*x2 share x1, and their lcm has degree 3.
	system := []NodeID{
		Add(c, f, f.Monomial(0, 1), f.Term(2)),
		Add(c, f, f.Monomial(1, 2), f.Term(0)),
	}
	res := SlimGrobnerBasis(c, f, system, 0, 1)
	assert.GreaterOrEqual(t, res.Truncated, 1)
	assert.Contains(t, buf.String(), "grobner pairs exceed sparsity bound")

	c = NewCache()
	f = NewForest()
	system = []NodeID{
		Add(c, f, f.Monomial(0, 1), f.Term(2)),
		Add(c, f, f.Monomial(1, 2), f.Term(0)),
	}
	res = SlimGrobnerBasis(c, f, system, 0, 0)
	require.True(t, res.Complete)
	assert.Zero(t, res.Truncated)
	assert.True(t, IsGrobnerBasis(c, f, res.Basis))
}

func TestSlimGrobnerBasisReplacement(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	f := NewForest()

	// x0*g = x0*x1 + x0*x3 shares the lead x0*x1 of g with fewer terms, so
	// it takes the place of g in the basis.
	g := poly(c, f, []Variable{0, 1}, []Variable{0, 2}, []Variable{2}, []Variable{3})
	res := SlimGrobnerBasis(c, f, []NodeID{g}, 1, 0)
	require.True(t, res.Complete)
	assert.Positive(t, res.Reductions["replacement"])
	assert.True(t, IsGrobnerBasis(c, f, res.Basis))

	reduced := ReducedGrobnerBasis(c, f, res.Basis)
	assert.Equal(t, False, NormalForm(c, f, g, reduced))

	vars := []Variable{0, 1, 2, 3}
	want, err := Zeros(ctx, c, f, []NodeID{g}, vars, 0)
	require.NoError(t, err)
	got, err := Zeros(ctx, c, f, reduced, vars, 0)
	require.NoError(t, err)
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]))
	}
}

func TestCompletionReplaceRedirectsPairs(t *testing.T) {
	c := NewCache()
	f := NewForest()
	old := poly(c, f, []Variable{0, 1}, []Variable{0, 2}, []Variable{2}, []Variable{3})
	other := poly(c, f, []Variable{1, 2}, []Variable{3})
	s := poly(c, f, []Variable{0, 1}, []Variable{0, 3})

	g := newCompletion(c, f)
	g.insert(old)
	g.insert(other)
	require.True(t, slices.ContainsFunc(g.queue, func(p queuedPair) bool {
		return !p.field && p.lhs == old && p.rhs == other
	}))

	g.replace(old, s)
	assert.Equal(t, []NodeID{s, other}, g.basis)
	assert.Len(t, g.queued, len(g.queue))
	for _, p := range g.queue {
		assert.NotEqual(t, old, p.lhs)
		assert.NotEqual(t, old, p.rhs)
	}
	assert.True(t, slices.ContainsFunc(g.queue, func(p queuedPair) bool {
		return !p.field && p.key() == criticalPair{lhs: s, rhs: other}.key()
	}))
}

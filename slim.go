package goanf

import (
	"fmt"
	"log/slog"
	"slices"
)

// Result is the outcome of SlimGrobnerBasis.
type Result struct {
	// Basis generates the ideal of the input polynomials. It is a Gröbner
	// basis only when Complete is true.
	Basis []NodeID

	// Complete is false when the iteration budget ran out while critical
	// pairs were still queued.
	Complete bool

	// Iterations is the number of batches processed.
	Iterations int

	// Reductions counts the reduction steps applied per strategy name.
	Reductions map[string]int

	// Truncated counts the critical pairs never queued because the lcm of
	// their leads exceeds the sparsity bound of the forest. Such pairs
	// truncate to a zero S-polynomial, so a basis with Truncated > 0 is
	// only complete up to that bound.
	Truncated int
}

// Err returns nil for a complete basis and an error wrapping ErrIncomplete
// otherwise.
func (r Result) Err() error {
	if r.Complete {
		return nil
	}
	return fmt.Errorf("%w: stopped after %d iterations", ErrIncomplete, r.Iterations)
}

// criticalPair is a queued S-polynomial. A field pair stands for the
// product of lhs with the variable v of its lead, the S-polynomial of lhs
// against the field equation v*v + v.
type criticalPair struct {
	lhs   NodeID
	rhs   NodeID
	v     Variable
	field bool
}

func (p criticalPair) key() criticalPair {
	p.lhs, p.rhs = minmax(p.lhs, p.rhs)
	return p
}

// queuedPair carries the lcm the queue is ordered by.
type queuedPair struct {
	criticalPair
	lcm NodeID
}

// completion holds the state of one SlimGrobnerBasis run.
type completion struct {
	c *Cache
	f *Forest

	basis  []NodeID
	queue  []queuedPair
	queued map[criticalPair]struct{}

	strategies []reductionStrategy
	applied    map[string]int
	truncated  map[criticalPair]struct{}
}

// SlimGrobnerBasis completes polys to a Gröbner basis of the ideal they
// generate.
//
// Each iteration takes up to maxReduceSet queued critical pairs, smallest
// lcm first, and computes their S-polynomials. The batch is then reduced
// step by step: every strategy proposes reductions and the one whose
// result has the smallest lead is applied. The surviving nonzero
// polynomials join the basis and are paired against it. Pairs with
// disjoint leads are never queued.
//
// Parameters:
//   - polys: Generators of the ideal (zeros and repeats are ignored)
//   - maxReduceSet: Pairs per batch (<= 0 takes the whole queue)
//   - maxIterations: Batch budget (<= 0 runs until the queue is empty)
//
// When the budget runs out the returned basis is incomplete. Check
// Result.Complete or Result.Err, or verify with IsGrobnerBasis.
//
// On a forest with a sparsity bound, pairs whose lcm has a higher degree
// than the bound are dropped and counted in Result.Truncated.
func SlimGrobnerBasis(c *Cache, f *Forest, polys []NodeID, maxReduceSet, maxIterations int) Result {
	c.bind(f)
	for _, p := range polys {
		f.check(p)
	}

	return newCompletion(c, f).run(polys, maxReduceSet, maxIterations)
}

func newCompletion(c *Cache, f *Forest) *completion {
	return &completion{
		c:          c,
		f:          f,
		queued:     make(map[criticalPair]struct{}),
		strategies: defaultStrategies(),
		applied:    make(map[string]int),
		truncated:  make(map[criticalPair]struct{}),
	}
}

func (g *completion) run(polys []NodeID, maxReduceSet, maxIterations int) Result {
	start := distinctNonZero(polys)
	sortBasis(g.c, g.f, start)
	for _, p := range start {
		g.insert(p)
	}

	iterations := 0
	for len(g.queue) > 0 {
		if maxIterations > 0 && iterations >= maxIterations {
			g.f.logger.Warn("grobner basis incomplete",
				slog.Int("iterations", iterations),
				slog.Int("basis_size", len(g.basis)),
				slog.Int("queued_pairs", len(g.queue)))
			return g.result(false, iterations)
		}
		iterations++

		batch := g.pop(maxReduceSet)
		g.f.logger.Debug("grobner iteration",
			slog.Int("iteration", iterations),
			slog.Int("basis_size", len(g.basis)),
			slog.Int("queued_pairs", len(g.queue)),
			slog.Int("batch_size", len(batch)))

		candidates := make([]NodeID, 0, len(batch))
		for _, p := range batch {
			if s := g.candidate(p.criticalPair); s != False {
				candidates = append(candidates, s)
			}
		}

		for _, s := range g.reduce(candidates) {
			if !slices.Contains(g.basis, s) {
				g.insert(s)
			}
		}
	}

	return g.result(true, iterations)
}

func (g *completion) result(complete bool, iterations int) Result {
	if len(g.truncated) > 0 {
		g.f.logger.Warn("grobner pairs exceed sparsity bound",
			slog.Int("truncated_pairs", len(g.truncated)),
			slog.Int("sparsity", g.f.sparsity))
	}

	basis := slices.Clone(g.basis)
	sortBasis(g.c, g.f, basis)
	return Result{
		Basis:      basis,
		Complete:   complete,
		Iterations: iterations,
		Reductions: g.applied,
		Truncated:  len(g.truncated),
	}
}

// insert adds s to the basis and queues its pairs.
func (g *completion) insert(s NodeID) {
	g.enqueue(s)
	g.basis = append(g.basis, s)
}

// enqueue queues the field pairs of s and its S-pairs against the basis.
func (g *completion) enqueue(s NodeID) {
	c, f := g.c, g.f
	ls := lead(c, f, s)

	for m := ls; !m.IsConstant(); {
		v, hi, _ := f.split(m)
		if multiply(c, f, f.mk(v, True, False), s, f.sparsity) != s {
			g.push(criticalPair{lhs: s, v: v, field: true}, ls)
		}
		m = hi
	}

	for _, b := range g.basis {
		if b == s || disjoint(c, f, lead(c, f, b), ls) {
			continue
		}
		m := lcm(c, f, lead(c, f, b), ls)
		if m == False {
			g.truncated[criticalPair{lhs: b, rhs: s}.key()] = struct{}{}
			continue
		}
		g.push(criticalPair{lhs: b, rhs: s}, m)
	}
}

func (g *completion) push(p criticalPair, m NodeID) {
	k := p.key()
	if _, ok := g.queued[k]; ok {
		return
	}
	g.queued[k] = struct{}{}
	g.queue = append(g.queue, queuedPair{criticalPair: p, lcm: m})
}

// pop removes up to n pairs with the smallest lcm from the queue.
func (g *completion) pop(n int) []queuedPair {
	slices.SortStableFunc(g.queue, func(a, b queuedPair) int {
		return compare(g.c, g.f, b.lcm, a.lcm)
	})
	if n <= 0 || n > len(g.queue) {
		n = len(g.queue)
	}

	batch := slices.Clone(g.queue[:n])
	g.queue = slices.Delete(g.queue, 0, n)
	for _, p := range batch {
		delete(g.queued, p.key())
	}
	return batch
}

func (g *completion) candidate(p criticalPair) NodeID {
	if p.field {
		return multiply(g.c, g.f, g.f.mk(p.v, True, False), p.lhs, g.f.sparsity)
	}
	return spoly(g.c, g.f, p.lhs, p.rhs)
}

// reduce applies the cheapest proposed reduction until no strategy
// proposes one, dropping candidates that reach zero.
func (g *completion) reduce(candidates []NodeID) []NodeID {
	for {
		var best *reduction
		for priority, strategy := range g.strategies {
			strategy.propose(g.c, g.f, g.basis, candidates, func(r reduction) {
				r.priority = priority
				if best == nil || g.cheaper(r, *best) {
					best = &r
				}
			})
		}
		if best == nil {
			return candidates
		}

		g.applied[g.strategies[best.priority].name()]++
		if best.replaces != False {
			g.replace(best.replaces, candidates[best.candidate])
		}
		candidates[best.candidate] = best.result
		candidates = slices.DeleteFunc(candidates, func(s NodeID) bool {
			return s == False
		})
	}
}

// cheaper reports whether r beats best: a smaller result lead wins, zero
// being the smallest of all, and ties go to the earlier strategy.
func (g *completion) cheaper(r, best reduction) bool {
	if cmp := compare(g.c, g.f, lead(g.c, g.f, r.result), lead(g.c, g.f, best.result)); cmp != 0 {
		return cmp > 0
	}
	return r.priority < best.priority
}

// replace swaps s into the basis in place of old and redirects every
// queued pair of old to s.
func (g *completion) replace(old, s NodeID) {
	i := slices.Index(g.basis, old)
	if i < 0 {
		invariant("replaced polynomial %s is not in the basis", old)
	}
	g.basis[i] = s

	queue := g.queue
	g.queue = g.queue[:0:0]
	clear(g.queued)
	for _, p := range queue {
		if p.lhs == old {
			p.lhs = s
		}
		if p.rhs == old {
			p.rhs = s
		}
		g.push(p.criticalPair, p.lcm)
	}

	// s sits in the basis already, so enqueue pairs it with the others.
	g.enqueue(s)
}

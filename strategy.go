package goanf

// reduction is one proposed rewrite of a candidate during basis completion.
type reduction struct {
	// candidate indexes the candidate being rewritten.
	candidate int

	// result replaces the candidate. A zero result drops it.
	result NodeID

	// replaces, when not False, is the basis element the candidate takes
	// the place of before being rewritten.
	replaces NodeID

	// priority breaks ties between equally cheap reductions; lower wins.
	priority int
}

// reductionStrategy proposes reductions of the candidates of one batch.
//
// Strategies are composed by the completion loop, which applies the
// cheapest proposal of all strategies and asks again. A strategy must
// only propose rewrites that keep the ideal generated by the basis and
// candidates unchanged.
type reductionStrategy interface {
	// name identifies the strategy in Result.Reductions.
	name() string

	// propose calls emit once per applicable reduction.
	propose(c *Cache, f *Forest, basis, candidates []NodeID, emit func(reduction))
}

// defaultStrategies returns the strategies in tie-breaking order.
func defaultStrategies() []reductionStrategy {
	return []reductionStrategy{
		replacementStrategy{},
		groupReductionStrategy{},
		leadDivisionStrategy{},
	}
}

// leadDivisionStrategy top-reduces a candidate by any basis element whose
// lead divides the candidate's lead.
type leadDivisionStrategy struct{}

func (leadDivisionStrategy) name() string { return "lead_division" }

func (leadDivisionStrategy) propose(c *Cache, f *Forest, basis, candidates []NodeID, emit func(reduction)) {
	for i, s := range candidates {
		ls := lead(c, f, s)
		for _, g := range basis {
			if divides(c, f, lead(c, f, g), ls) {
				emit(reduction{candidate: i, result: spoly(c, f, s, g), replaces: False})
			}
		}
	}
}

// groupReductionStrategy cancels the shared lead of two candidates against
// each other before either is reduced by the basis.
type groupReductionStrategy struct{}

func (groupReductionStrategy) name() string { return "group_reduction" }

func (groupReductionStrategy) propose(c *Cache, f *Forest, _, candidates []NodeID, emit func(reduction)) {
	for i, s := range candidates {
		ls := lead(c, f, s)
		for j, t := range candidates {
			if i != j && lead(c, f, t) == ls {
				emit(reduction{candidate: i, result: add(c, f, s, t), replaces: False})
			}
		}
	}
}

// replacementStrategy swaps a candidate into the basis in place of the
// element sharing its lead when the candidate has fewer terms. The
// displaced element, reduced by the candidate, becomes the new candidate.
type replacementStrategy struct{}

func (replacementStrategy) name() string { return "replacement" }

func (replacementStrategy) propose(c *Cache, f *Forest, basis, candidates []NodeID, emit func(reduction)) {
	for i, s := range candidates {
		ls := lead(c, f, s)
		for _, g := range basis {
			if lead(c, f, g) == ls && termCount(c, f, s) < termCount(c, f, g) {
				emit(reduction{candidate: i, result: add(c, f, g, s), replaces: g})
			}
		}
	}
}

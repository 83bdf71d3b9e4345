package goanf

import (
	"context"
	"fmt"
	"slices"
)

// Restrict substitutes value for variable v in id.
func Restrict(c *Cache, f *Forest, id NodeID, v Variable, value bool) NodeID {
	c.bind(f)
	f.check(id)
	return restrict(c, f, id, v, value, make(map[NodeID]NodeID))
}

func restrict(c *Cache, f *Forest, id NodeID, v Variable, value bool, memo map[NodeID]NodeID) NodeID {
	tv, hi, lo := f.split(id)
	if tv > v {
		// v does not occur below this node.
		return id
	}
	if r, ok := memo[id]; ok {
		return r
	}

	var result NodeID
	switch {
	case tv == v && value:
		result = add(c, f, hi, lo)
	case tv == v:
		result = lo
	default:
		result = f.mk(tv,
			restrict(c, f, hi, v, value, memo),
			restrict(c, f, lo, v, value, memo))
	}

	memo[id] = result
	return result
}

// Zeros enumerates the assignments of vars under which every polynomial of
// system evaluates to zero. Variables of system outside vars are fixed to
// false. Branches stop as soon as a polynomial restricts to the constant 1.
//
// Parameters:
//   - ctx: Context for cancellation
//   - system: Polynomials that must all vanish
//   - vars: Variables to enumerate, in branching order
//   - limit: Maximum number of zeros to return (<= 0 returns all)
//
// The search is exhaustive in the worst case. Reduce the system with
// SlimGrobnerBasis first when it is large.
func Zeros(ctx context.Context, c *Cache, f *Forest, system []NodeID, vars []Variable, limit int) ([]Assignment, error) {
	c.bind(f)
	for _, p := range system {
		f.check(p)
	}

	var zeros []Assignment
	current := NewAssignment()

	var search func(system []NodeID, depth int) error
	search = func(system []NodeID, depth int) error {
		// Check for cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if slices.Contains(system, True) {
			return nil
		}
		if depth == len(vars) {
			for _, p := range system {
				if f.Evaluate(p, current) {
					return nil
				}
			}
			zeros = append(zeros, current.Clone())
			return nil
		}

		v := vars[depth]
		for _, value := range []bool{false, true} {
			if limit > 0 && len(zeros) >= limit {
				return nil
			}

			next := make([]NodeID, 0, len(system))
			memos := make(map[NodeID]NodeID)
			for _, p := range system {
				if r := restrict(c, f, p, v, value, memos); r != False {
					next = append(next, r)
				}
			}

			current.Set(v, value)
			err := search(next, depth+1)
			current.Set(v, false)
			if err != nil {
				return err
			}
		}
		return nil
	}

	if err := search(distinctNonZero(system), 0); err != nil {
		return zeros, fmt.Errorf("zero enumeration interrupted: %w", err)
	}
	return zeros, nil
}

package goanf

import "math"

// Degree returns the total degree of id. It reads the degree recorded at
// construction, so it never recurses.
func Degree(c *Cache, f *Forest, id NodeID) int {
	c.bind(f)
	return f.Degree(id)
}

// DegreeBounded returns the total degree of id, which the caller asserts
// to be at most bound.
//
// Panics with ErrInvariantViolation if the recorded degree exceeds bound.
func DegreeBounded(c *Cache, f *Forest, id NodeID, bound int) int {
	c.bind(f)
	d := f.Degree(id)
	if d > bound {
		invariant("degree %d of %s exceeds asserted bound %d", d, id, bound)
	}
	return d
}

// Lead returns the leading monomial of id under the graded order: highest
// degree first, ties going to the monomial with the smaller first
// differing variable. The constants are their own leads.
func Lead(c *Cache, f *Forest, id NodeID) NodeID {
	c.bind(f)
	f.check(id)
	return lead(c, f, id)
}

// LeadBounded returns the leading monomial of id, whose degree the caller
// asserts to be at most bound.
//
// Panics with ErrPreconditionViolation if bound is 0 and id is not a
// constant, and with ErrInvariantViolation if the degree exceeds bound.
func LeadBounded(c *Cache, f *Forest, id NodeID, bound int) NodeID {
	c.bind(f)
	f.check(id)
	if id.IsConstant() {
		return id
	}
	if bound == 0 {
		precondition("zero degree bound for non-constant %s", id)
	}
	DegreeBounded(c, f, id, bound)
	return lead(c, f, id)
}

func lead(c *Cache, f *Forest, id NodeID) NodeID {
	if id.IsConstant() {
		return id
	}
	if r, ok := c.lead.get(id); ok {
		return r
	}

	v, hi, lo := f.split(id)
	var result NodeID
	if f.Degree(id) == f.Degree(hi)+1 {
		result = f.mk(v, lead(c, f, hi), False)
	} else {
		result = lead(c, f, lo)
	}

	return c.lead.put(id, result)
}

// Compare orders polynomials by their terms under the graded order. It
// returns -1 if lhs sorts before rhs, 0 if they are equal and +1
// otherwise.
//
// Higher-degree leads sort first. Equal-degree leads are compared along
// their variables, and the lead with the smaller first differing variable
// sorts first. Polynomials with equal leads compare by their remaining
// terms. True sorts after every non-constant polynomial and False sorts
// last.
//
// Compare has the shape expected by slices.SortFunc.
func Compare(c *Cache, f *Forest, lhs, rhs NodeID) int {
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	return compare(c, f, lhs, rhs)
}

// ReverseCompare is Compare with the operands swapped, sorting smallest
// first.
func ReverseCompare(c *Cache, f *Forest, lhs, rhs NodeID) int {
	return Compare(c, f, rhs, lhs)
}

func compare(c *Cache, f *Forest, lhs, rhs NodeID) int {
	for lhs != rhs {
		switch {
		case lhs == False:
			return 1
		case rhs == False:
			return -1
		case lhs == True:
			return 1
		case rhs == True:
			return -1
		}

		ll, rl := lead(c, f, lhs), lead(c, f, rhs)
		if ll == rl {
			lhs, rhs = add(c, f, lhs, ll), add(c, f, rhs, rl)
			continue
		}
		return f.compareMonomials(ll, rl)
	}
	return 0
}

// compareMonomials orders two distinct monomials.
func (f *Forest) compareMonomials(lhs, rhs NodeID) int {
	if dl, dr := f.Degree(lhs), f.Degree(rhs); dl != dr {
		if dl > dr {
			return -1
		}
		return 1
	}
	for lhs != rhs {
		lv, lhi, _ := f.split(lhs)
		rv, rhi, _ := f.split(rhs)
		switch {
		case lv < rv:
			return -1
		case lv > rv:
			return 1
		}
		lhs, rhs = lhi, rhi
	}
	return 0
}

// TermCount returns the number of monomials of id. Counts beyond the int
// range saturate.
func TermCount(c *Cache, f *Forest, id NodeID) int {
	c.bind(f)
	f.check(id)
	return termCount(c, f, id)
}

func termCount(c *Cache, f *Forest, id NodeID) int {
	switch id {
	case False:
		return 0
	case True:
		return 1
	}
	if n, ok := c.termCount.get(id); ok {
		return n
	}

	_, hi, lo := f.split(id)
	h, l := termCount(c, f, hi), termCount(c, f, lo)
	n := h + l
	if h > math.MaxInt-l {
		n = math.MaxInt
	}

	return c.termCount.put(id, n)
}

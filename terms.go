package goanf

import "slices"

// Terms enumerates the monomials of id, highest first under the graded
// order. The zero polynomial has no terms; the constant 1 is the single
// term True.
//
// The result has TermCount(id) entries, so only call Terms on polynomials
// known to be small.
func Terms(f *Forest, id NodeID) []NodeID {
	f.check(id)

	var terms []NodeID
	var path []Variable
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if id == False {
			return
		}
		if id == True {
			terms = append(terms, f.monomial(path))
			return
		}
		v, hi, lo := f.split(id)
		path = append(path, v)
		walk(hi)
		path = path[:len(path)-1]
		walk(lo)
	}
	walk(id)

	slices.SortFunc(terms, func(a, b NodeID) int {
		if a == b {
			return 0
		}
		if a == True {
			return 1
		}
		if b == True {
			return -1
		}
		return f.compareMonomials(a, b)
	})
	return terms
}

// Monomial returns the product of vars. Duplicates are allowed since
// variables are idempotent. An empty product is True.
func (f *Forest) Monomial(vars ...Variable) NodeID {
	sorted := slices.Clone(vars)
	slices.Sort(sorted)
	return f.monomial(slices.Compact(sorted))
}

// monomial builds the product of strictly increasing vars.
func (f *Forest) monomial(vars []Variable) NodeID {
	id := True
	for i := len(vars) - 1; i >= 0; i-- {
		id = f.mk(vars[i], id, False)
	}
	return id
}

// TermsContaining returns the part of poly made of the terms divisible by
// monomial.
//
// Panics with ErrPreconditionViolation if monomial is not a monomial.
func TermsContaining(c *Cache, f *Forest, poly, monomial NodeID) NodeID {
	q := DivideByMonomial(c, f, poly, monomial)
	return multiply(c, f, q, monomial, Unbounded)
}

// ConstantTerm returns the constant coefficient of id as True or False.
func ConstantTerm(f *Forest, id NodeID) NodeID {
	f.check(id)
	return f.constantTerm(id)
}

func (f *Forest) constantTerm(id NodeID) NodeID {
	for !id.IsConstant() {
		_, _, id = f.split(id)
	}
	return id
}

// Variables returns the variables occurring in id in increasing order.
func Variables(f *Forest, id NodeID) []Variable {
	f.check(id)
	return f.variables(id)
}

func (f *Forest) variables(id NodeID) []Variable {
	seen := make(map[NodeID]struct{})
	vars := make(map[Variable]struct{})
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if id.IsConstant() {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}

		v, hi, lo := f.split(id)
		vars[v] = struct{}{}
		walk(hi)
		walk(lo)
	}
	walk(id)

	out := make([]Variable, 0, len(vars))
	for v := range vars {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Rename substitutes rename(v) for every variable v of id. The renaming
// need not preserve the variable order or be injective; the result is
// rebuilt through the algebra and is canonical.
func Rename(c *Cache, f *Forest, id NodeID, rename func(Variable) Variable) NodeID {
	c.bind(f)
	f.check(id)

	memo := make(map[NodeID]NodeID)
	var walk func(id NodeID) NodeID
	walk = func(id NodeID) NodeID {
		if id.IsConstant() {
			return id
		}
		if r, ok := memo[id]; ok {
			return r
		}

		v, hi, lo := f.split(id)
		term := f.mk(rename(v), True, False)
		r := add(c, f, walk(lo), multiply(c, f, term, walk(hi), f.sparsity))

		memo[id] = r
		return r
	}
	return walk(id)
}

package goanf

// IsMonomial reports whether id is a single term: True or a product of
// distinct variables. False has no terms and is not a monomial.
func IsMonomial(f *Forest, id NodeID) bool {
	f.check(id)
	return f.isMonomial(id)
}

func (f *Forest) isMonomial(id NodeID) bool {
	for !id.IsConstant() {
		_, hi, lo := f.split(id)
		if lo != False {
			return false
		}
		id = hi
	}
	return id == True
}

// Support returns the product of every variable occurring in id. The
// support of a constant is True. On a forest with a sparsity bound, a
// support with more variables than the bound truncates to False.
func Support(c *Cache, f *Forest, id NodeID) NodeID {
	c.bind(f)
	f.check(id)
	return support(c, f, id)
}

func support(c *Cache, f *Forest, id NodeID) NodeID {
	if id.IsConstant() {
		return True
	}
	if r, ok := c.support.get(id); ok {
		return r
	}

	v, hi, lo := f.split(id)
	result := f.mk(v, lcm(c, f, support(c, f, hi), support(c, f, lo)), False)

	return c.support.put(id, result)
}

// Disjoint reports whether lhs and rhs share no variable. Constants are
// disjoint from everything.
func Disjoint(c *Cache, f *Forest, lhs, rhs NodeID) bool {
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	return disjoint(c, f, lhs, rhs)
}

// DisjointLead reports whether the leading monomials of lhs and rhs share
// no variable. When it holds, the S-polynomial of lhs and rhs reduces to
// zero and the pair can be skipped (Buchberger's coprimality criterion).
func DisjointLead(c *Cache, f *Forest, lhs, rhs NodeID) bool {
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	return disjoint(c, f, lead(c, f, lhs), lead(c, f, rhs))
}

func disjoint(c *Cache, f *Forest, lhs, rhs NodeID) bool {
	lhs, rhs = minmax(lhs, rhs)
	if lhs.IsConstant() || rhs.IsConstant() {
		return true
	}

	key := pair{lhs, rhs}
	if r, ok := c.disjoint.get(key); ok {
		return r
	}

	// Walk both variable sets in order looking for a shared variable. The
	// sets are not built as support monomials, which a sparsity bound
	// could truncate.
	result := true
	lv, rv := f.variables(lhs), f.variables(rhs)
	for i, j := 0, 0; i < len(lv) && j < len(rv); {
		if lv[i] == rv[j] {
			result = false
			break
		}
		if lv[i] < rv[j] {
			i++
		} else {
			j++
		}
	}

	return c.disjoint.put(key, result)
}

// Divides reports whether the monomial lhs divides the monomial rhs, that
// is whether every variable of lhs occurs in rhs.
//
// Panics with ErrPreconditionViolation if either operand is not a monomial.
func Divides(c *Cache, f *Forest, lhs, rhs NodeID) bool {
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	if !f.isMonomial(lhs) || !f.isMonomial(rhs) {
		precondition("divides(%s, %s) requires monomials", lhs, rhs)
	}
	return divides(c, f, lhs, rhs)
}

func divides(c *Cache, f *Forest, lhs, rhs NodeID) bool {
	switch {
	case lhs == True || lhs == rhs:
		return true
	case rhs == True:
		return false
	}

	key := pair{lhs, rhs}
	if r, ok := c.divides.get(key); ok {
		return r
	}

	lv, lhi, _ := f.split(lhs)
	rv, rhi, _ := f.split(rhs)
	var result bool
	switch {
	case lv == rv:
		result = divides(c, f, lhi, rhi)
	case lv > rv:
		result = divides(c, f, lhs, rhi)
	default:
		// lv does not occur in rhs.
		result = false
	}

	return c.divides.put(key, result)
}

// LeastCommonMultiple returns the product of the variables occurring in
// either monomial. On a forest with a sparsity bound, an lcm of higher
// degree than the bound truncates to False.
//
// Panics with ErrPreconditionViolation if either operand is not a monomial.
func LeastCommonMultiple(c *Cache, f *Forest, lhs, rhs NodeID) NodeID {
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	if !f.isMonomial(lhs) || !f.isMonomial(rhs) {
		precondition("lcm(%s, %s) requires monomials", lhs, rhs)
	}
	return lcm(c, f, lhs, rhs)
}

func lcm(c *Cache, f *Forest, lhs, rhs NodeID) NodeID {
	lhs, rhs = minmax(lhs, rhs)
	switch {
	case lhs == True || lhs == rhs:
		return rhs
	case rhs == True:
		return lhs
	}

	key := pair{lhs, rhs}
	if r, ok := c.lcm.get(key); ok {
		return r
	}

	v := min(f.varOf(lhs), f.varOf(rhs))
	lhi, llo := f.cofactors(lhs, v)
	rhi, rlo := f.cofactors(rhs, v)
	// A monomial without v stays in the lo cofactor.
	if lhi == False {
		lhi = llo
	}
	if rhi == False {
		rhi = rlo
	}
	result := f.mk(v, lcm(c, f, lhi, rhi), False)

	return c.lcm.put(key, result)
}

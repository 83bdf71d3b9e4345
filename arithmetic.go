package goanf

// cofactors splits id on variable v. If v is not the top variable of id,
// id does not depend on v and the hi cofactor is False.
func (f *Forest) cofactors(id NodeID, v Variable) (hi, lo NodeID) {
	tv, thi, tlo := f.split(id)
	if tv != v {
		return False, id
	}
	return thi, tlo
}

// Add returns the GF(2) sum lhs + rhs.
func Add(c *Cache, f *Forest, lhs, rhs NodeID) NodeID {
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	return add(c, f, lhs, rhs)
}

func add(c *Cache, f *Forest, lhs, rhs NodeID) NodeID {
	lhs, rhs = minmax(lhs, rhs)

	// 0 + r = r and l + l = 0
	if lhs == False {
		return rhs
	}
	if lhs == rhs {
		return False
	}

	key := pair{lhs, rhs}
	if r, ok := c.add.get(key); ok {
		return r
	}

	v := min(f.varOf(lhs), f.varOf(rhs))
	lhi, llo := f.cofactors(lhs, v)
	rhi, rlo := f.cofactors(rhs, v)
	result := f.mk(v, add(c, f, lhi, rhi), add(c, f, llo, rlo))

	return c.add.put(key, result)
}

// Multiply returns the GF(2) product lhs * rhs, truncated to the sparsity
// bound of f.
func Multiply(c *Cache, f *Forest, lhs, rhs NodeID) NodeID {
	return MultiplyWithSparsity(c, f, lhs, rhs, f.sparsity)
}

// MultiplyWithSparsity returns lhs * rhs with every term of degree above
// bound dropped. Pruning happens during the recursion, so a small bound
// avoids building the high-degree part of the product at all.
//
// A negative bound is a precondition violation. Unbounded computes the
// exact product.
func MultiplyWithSparsity(c *Cache, f *Forest, lhs, rhs NodeID, bound int) NodeID {
	if bound < 0 {
		precondition("negative sparsity bound %d", bound)
	}
	c.bind(f)
	f.check(lhs)
	f.check(rhs)
	return multiply(c, f, lhs, rhs, bound)
}

func multiply(c *Cache, f *Forest, lhs, rhs NodeID, bound int) NodeID {
	lhs, rhs = minmax(lhs, rhs)

	switch {
	case lhs == False:
		return False
	case lhs == True, lhs == rhs:
		return f.EnforceSparsity(rhs, bound)
	case bound == 0:
		// Only the constant terms survive.
		if f.constantTerm(lhs) == True && f.constantTerm(rhs) == True {
			return True
		}
		return False
	}

	key := boundedPair{lhs, rhs, bound}
	if r, ok := c.multiply.get(key); ok {
		return r
	}

	// (p0 + v*p1)(q0 + v*q1) = p0*q0 + v*(p0*q1 + p1*(q0 + q1))
	v := min(f.varOf(lhs), f.varOf(rhs))
	p1, p0 := f.cofactors(lhs, v)
	q1, q0 := f.cofactors(rhs, v)

	hiBound := decrement(bound)
	hi := add(c, f,
		multiply(c, f, p0, q1, hiBound),
		multiply(c, f, add(c, f, q0, q1), p1, hiBound))
	lo := multiply(c, f, p0, q0, bound)
	result := f.mk(v, hi, lo)

	return c.multiply.put(key, result)
}

// decrement lowers a positive sparsity bound by one. Unbounded stays put.
func decrement(bound int) int {
	if bound == Unbounded {
		return bound
	}
	return bound - 1
}

// DivideByMonomial returns the exact quotient of poly by monomial: every
// term of poly divisible by monomial, with the monomial's variables
// removed. Terms not divisible by monomial are dropped.
//
// Panics with ErrPreconditionViolation if monomial is False or has more
// than one term.
func DivideByMonomial(c *Cache, f *Forest, poly, monomial NodeID) NodeID {
	c.bind(f)
	f.check(poly)
	f.check(monomial)
	if monomial == False {
		precondition("division by the zero monomial")
	}
	if !f.isMonomial(monomial) {
		precondition("divisor %s is not a monomial", monomial)
	}
	return divide(c, f, poly, monomial)
}

func divide(c *Cache, f *Forest, poly, monomial NodeID) NodeID {
	switch {
	case monomial == True:
		return poly
	case poly.IsConstant():
		return False
	}

	key := pair{poly, monomial}
	if r, ok := c.divide.get(key); ok {
		return r
	}

	pv, phi, plo := f.split(poly)
	mv, mhi, _ := f.split(monomial)

	var result NodeID
	switch {
	case pv == mv:
		result = divide(c, f, phi, mhi)
	case pv < mv:
		result = f.mk(pv, divide(c, f, phi, monomial), divide(c, f, plo, monomial))
	default:
		// mv does not occur in poly.
		result = False
	}

	return c.divide.put(key, result)
}

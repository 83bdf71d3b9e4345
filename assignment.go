package goanf

import (
	"slices"
	"strings"
)

// Assignment is the set of variables assigned true. Every variable outside
// the set is false.
//
// The zero value is the empty assignment and is ready to use.
type Assignment struct {
	vars map[Variable]struct{}
}

// NewAssignment creates an Assignment with the given variables set to true.
func NewAssignment(vars ...Variable) Assignment {
	a := Assignment{vars: make(map[Variable]struct{}, len(vars))}
	for _, v := range vars {
		a.vars[v] = struct{}{}
	}
	return a
}

// AssignmentFromBits sets variable offset+i to true for each bit i of bits
// below width. It is handy for enumerating every assignment of a small
// variable range:
//
//	for bits := uint64(0); bits < 1<<n; bits++ {
//	    a := AssignmentFromBits(0, bits, n)
//	    ...
//	}
func AssignmentFromBits(offset Variable, bits uint64, width int) Assignment {
	a := NewAssignment()
	for i := 0; i < width && i < 64; i++ {
		if bits&(1<<i) != 0 {
			a.vars[offset+Variable(i)] = struct{}{}
		}
	}
	return a
}

// Has reports whether v is assigned true.
func (a Assignment) Has(v Variable) bool {
	_, ok := a.vars[v]
	return ok
}

// Set assigns value to v.
func (a *Assignment) Set(v Variable, value bool) {
	if !value {
		delete(a.vars, v)
		return
	}
	if a.vars == nil {
		a.vars = make(map[Variable]struct{})
	}
	a.vars[v] = struct{}{}
}

// Len returns the number of true variables.
func (a Assignment) Len() int {
	return len(a.vars)
}

// Variables returns the true variables in increasing order.
func (a Assignment) Variables() []Variable {
	out := make([]Variable, 0, len(a.vars))
	for v := range a.vars {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Clone creates a deep copy of the Assignment.
func (a Assignment) Clone() Assignment {
	return NewAssignment(a.Variables()...)
}

// Equal checks whether both assignments set the same variables.
func (a Assignment) Equal(other Assignment) bool {
	if len(a.vars) != len(other.vars) {
		return false
	}
	for v := range a.vars {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// String renders the assignment as a sorted set such as {x0, x3}.
func (a Assignment) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range a.Variables() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(variableName(v))
	}
	b.WriteByte('}')
	return b.String()
}

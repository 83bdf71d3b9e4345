// Package word bit-slices 32-bit machine words into GF(2) polynomials.
//
// A Word holds one polynomial per bit lane, lane 0 being the least
// significant bit. Word operations are built only from the algebra of the
// goanf package, so a round function written against Words evaluates
// symbolically: feeding Input words through it yields, per output bit, the
// polynomial of that bit in the input variables.
//
// Basic usage:
//
//	f := goanf.NewForest()
//	c := goanf.NewCache()
//
//	a := word.Input(f, 0)  // variables x0..x31
//	b := word.Constant(0x5a827999)
//	sum := word.Add(c, f, word.RotateRight(a, 5), b)
//
//	fmt.Println(sum.Evaluate(f, goanf.AssignmentFromBits(0, 0xdeadbeef, 32)))
package word

import (
	"fmt"
	"math"

	goanf "github.com/zzenonn/go-anf"
)

// Lanes is the number of bit lanes of a Word.
const Lanes = 32

// Word is a 32-bit machine word whose bits are polynomials.
type Word [Lanes]goanf.NodeID

// Constant returns the word whose lanes are the bits of value.
func Constant(value uint32) Word {
	var w Word
	for i := range w {
		if value&(1<<i) != 0 {
			w[i] = goanf.True
		} else {
			w[i] = goanf.False
		}
	}
	return w
}

// MaxInputOffset is the largest offset Input accepts. Beyond it the lane
// variables would wrap around or reach the reserved terminal index.
const MaxInputOffset = goanf.Variable(math.MaxUint32 - Lanes)

// Input returns a word of free variables: lane i is variable offset+i.
//
// Panics with goanf.ErrPreconditionViolation if offset exceeds
// MaxInputOffset.
func Input(f *goanf.Forest, offset goanf.Variable) Word {
	if offset > MaxInputOffset {
		panic(fmt.Errorf("%w: word input offset %d exceeds %d", goanf.ErrPreconditionViolation, offset, MaxInputOffset))
	}
	return FromFunc(func(lane int) goanf.NodeID {
		return f.Term(offset + goanf.Variable(lane))
	})
}

// FromFunc builds a word lane by lane.
func FromFunc(lane func(i int) goanf.NodeID) Word {
	var w Word
	for i := range w {
		w[i] = lane(i)
	}
	return w
}

// Xor returns the lane-wise sum a + b.
func Xor(c *goanf.Cache, f *goanf.Forest, a, b Word) Word {
	return FromFunc(func(i int) goanf.NodeID {
		return goanf.Add(c, f, a[i], b[i])
	})
}

// And returns the lane-wise product a * b.
func And(c *goanf.Cache, f *goanf.Forest, a, b Word) Word {
	return FromFunc(func(i int) goanf.NodeID {
		return goanf.Multiply(c, f, a[i], b[i])
	})
}

// Not returns the lane-wise complement a + 1.
func Not(c *goanf.Cache, f *goanf.Forest, a Word) Word {
	return FromFunc(func(i int) goanf.NodeID {
		return goanf.Add(c, f, a[i], goanf.True)
	})
}

// DivideByMonomial divides every lane of a by monomial.
func DivideByMonomial(c *goanf.Cache, f *goanf.Forest, a Word, monomial goanf.NodeID) Word {
	return FromFunc(func(i int) goanf.NodeID {
		return goanf.DivideByMonomial(c, f, a[i], monomial)
	})
}

// Add returns a + b modulo 2^32 with a ripple-carry adder. Lane i of the
// sum is a_i + b_i + carry_i, and the carry out is the majority
// a_i*b_i + carry_i*(a_i + b_i).
func Add(c *goanf.Cache, f *goanf.Forest, a, b Word) Word {
	var sum Word
	carry := goanf.False
	for i := range sum {
		ab := goanf.Add(c, f, a[i], b[i])
		sum[i] = goanf.Add(c, f, ab, carry)
		if i == Lanes-1 {
			break
		}
		carry = goanf.Add(c, f,
			goanf.Multiply(c, f, a[i], b[i]),
			goanf.Multiply(c, f, carry, ab))
	}
	return sum
}

// Mul returns a * b modulo 2^32 by shift-and-add over the lanes of b.
func Mul(c *goanf.Cache, f *goanf.Forest, a, b Word) Word {
	product := Constant(0)
	for i := range Lanes {
		if b[i] == goanf.False {
			continue
		}
		shifted := ShiftLeft(a, i)
		partial := FromFunc(func(lane int) goanf.NodeID {
			return goanf.Multiply(c, f, shifted[lane], b[i])
		})
		product = Add(c, f, product, partial)
	}
	return product
}

// RotateRight rotates the lanes of a right by n positions.
func RotateRight(a Word, n int) Word {
	n = ((n % Lanes) + Lanes) % Lanes
	return FromFunc(func(i int) goanf.NodeID {
		return a[(i+n)%Lanes]
	})
}

// ShiftRight shifts the lanes of a right by n positions, filling with
// False.
func ShiftRight(a Word, n int) Word {
	return FromFunc(func(i int) goanf.NodeID {
		if n < 0 || i+n >= Lanes {
			return goanf.False
		}
		return a[i+n]
	})
}

// ShiftLeft shifts the lanes of a left by n positions, filling with False.
func ShiftLeft(a Word, n int) Word {
	return FromFunc(func(i int) goanf.NodeID {
		if n < 0 || i-n < 0 {
			return goanf.False
		}
		return a[i-n]
	})
}

// Evaluate substitutes assignment into every lane and packs the results.
func (w Word) Evaluate(f *goanf.Forest, assignment goanf.Assignment) uint32 {
	var out uint32
	for i, lane := range w {
		if f.Evaluate(lane, assignment) {
			out |= 1 << i
		}
	}
	return out
}

// Value returns the word as an integer if every lane is constant.
func (w Word) Value() (uint32, bool) {
	var out uint32
	for i, lane := range w {
		switch lane {
		case goanf.True:
			out |= 1 << i
		case goanf.False:
		default:
			return 0, false
		}
	}
	return out, true
}

// Degree returns the largest degree across the lanes of w.
func (w Word) Degree(f *goanf.Forest) int {
	d := 0
	for _, lane := range w {
		d = max(d, f.Degree(lane))
	}
	return d
}

// Equal reports whether both words have identical lanes.
func (w Word) Equal(other Word) bool {
	return w == other
}

// Equations returns the nonzero lanes of w + other: the polynomial system
// whose common zeros are the assignments making both words equal.
func Equations(c *goanf.Cache, f *goanf.Forest, w, other Word) []goanf.NodeID {
	var eqs []goanf.NodeID
	for i := range w {
		if e := goanf.Add(c, f, w[i], other[i]); e != goanf.False {
			eqs = append(eqs, e)
		}
	}
	return eqs
}

// String renders the constant value of w, or the number of symbolic lanes
// when there is any.
func (w Word) String() string {
	if v, ok := w.Value(); ok {
		return fmt.Sprintf("0x%08x", v)
	}
	return fmt.Sprintf("word(%d symbolic lanes)", w.symbolic())
}

func (w Word) symbolic() int {
	n := 0
	for _, lane := range w {
		if !lane.IsConstant() {
			n++
		}
	}
	return n
}

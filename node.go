package goanf

import (
	"fmt"
	"math"
)

// NodeID represents a canonical handle to a polynomial stored in a Forest.
//
// NodeIDs are assigned on first construction and remain valid for the
// lifetime of the Forest (or until Compact renumbers them). Because every
// polynomial has exactly one NodeID, equality of polynomials is equality
// of NodeIDs.
type NodeID uint64

// Variable identifies a Boolean variable. Smaller indices sit closer to
// the root of every diagram.
type Variable uint32

// Special node IDs for the two constants.
const (
	// False is the zero polynomial.
	False NodeID = 0

	// True is the constant polynomial 1.
	True NodeID = 1
)

// Unbounded disables degree truncation when used as a sparsity bound.
const Unbounded = math.MaxInt

const (
	// inlineTag marks a NodeID that encodes (v, True, lo) directly instead of
	// indexing the arena. Arena indices never reach this bit.
	inlineTag NodeID = 1 << 63

	// inlineVarShift positions the variable inside an inline NodeID.
	inlineVarShift = 32

	// inlineLoMask selects the lo branch of an inline NodeID.
	inlineLoMask NodeID = 1<<inlineVarShift - 1

	// maxInlineVariables is the largest number of variables that fit between
	// the lo field and the tag bit.
	maxInlineVariables = 1 << 31

	// terminalVar orders the constants after every real variable.
	terminalVar Variable = math.MaxUint32
)

// NodeKind distinguishes the constants from variable nodes.
type NodeKind uint8

const (
	// KindFalse is the zero polynomial.
	KindFalse NodeKind = iota

	// KindTrue is the constant polynomial 1.
	KindTrue

	// KindVariable is an internal node.
	KindVariable
)

// String returns the lowercase name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindVariable:
		return "variable"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node represents one decoded diagram node.
//
// A variable node stands for the polynomial Lo + Var*Hi, its algebraic
// normal form Shannon expansion on Var. Node invariants:
//   - Hi is never False (a node with Hi == False collapses to Lo)
//   - Var is strictly smaller than every variable reachable through Hi or Lo
//   - Terminal nodes carry no variable and no branches
type Node struct {
	// Kind selects between the constants and a variable node.
	Kind NodeKind

	// Var is the branching variable of a variable node.
	Var Variable

	// Hi is the cofactor multiplied by Var.
	Hi NodeID

	// Lo is the part of the polynomial that does not contain Var.
	Lo NodeID
}

// NewNode returns the variable node lo + v*hi.
func NewNode(v Variable, hi, lo NodeID) Node {
	return Node{Kind: KindVariable, Var: v, Hi: hi, Lo: lo}
}

// IsTerminal returns true if this node is one of the two constants.
func (n Node) IsTerminal() bool {
	return n.Kind != KindVariable
}

// String renders the node for debugging.
func (n Node) String() string {
	if n.IsTerminal() {
		return n.Kind.String()
	}
	return fmt.Sprintf("(x%d, hi=%s, lo=%s)", n.Var, n.Hi, n.Lo)
}

// IsConstant returns true for False and True.
func (id NodeID) IsConstant() bool {
	return id <= True
}

// IsInline returns true if the ID encodes its node without an arena slot.
func (id NodeID) IsInline() bool {
	return id&inlineTag != 0
}

// String renders the ID, marking inline IDs with their variable.
func (id NodeID) String() string {
	switch {
	case id == False:
		return "0"
	case id == True:
		return "1"
	case id.IsInline():
		return fmt.Sprintf("@x%d+%d", inlineVar(id), inlineLo(id))
	default:
		return fmt.Sprintf("#%d", uint64(id))
	}
}

func makeInline(v Variable, lo NodeID) NodeID {
	return inlineTag | NodeID(v)<<inlineVarShift | lo
}

func inlineVar(id NodeID) Variable {
	return Variable((id &^ inlineTag) >> inlineVarShift)
}

func inlineLo(id NodeID) NodeID {
	return id & inlineLoMask
}

// minmax orders a commutative operand pair so both argument orders share
// one cache entry.
func minmax(lhs, rhs NodeID) (NodeID, NodeID) {
	if lhs > rhs {
		return rhs, lhs
	}
	return lhs, rhs
}

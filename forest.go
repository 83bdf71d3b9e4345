// Package goanf provides a Go-native engine for multivariate polynomials over
// GF(2), stored as hash-consed decision diagrams, together with a
// Gröbner-basis completion engine.
//
// # Overview
//
// Every polynomial lives in a Forest and is named by a NodeID. A variable
// node (v, hi, lo) stands for lo + v*hi, the algebraic normal form Shannon
// expansion on v. The Forest canonicalizes every node it builds, so two
// polynomials are equal exactly when their NodeIDs are equal, and every
// recursive operation can be memoized on NodeIDs alone.
//
// # Key Features
//
//   - Hash-consed node arena with per-variable open-addressing pages
//   - Inline NodeIDs for bare variable terms, avoiding arena slots
//   - Optional degree truncation ("sparsity") for lossy approximation
//   - Memoized GF(2) arithmetic threaded through an explicit Cache
//   - Buchberger-style basis completion with three reduction strategies
//
// # Basic Usage
//
//	f := goanf.NewForest()
//	c := goanf.NewCache()
//
//	x, y, z := f.Term(0), f.Term(1), f.Term(2)
//	zx := goanf.Multiply(c, f, z, x)
//	system := []goanf.NodeID{x, goanf.Add(c, f, z, y), goanf.Add(c, f, zx, y)}
//
//	res := goanf.SlimGrobnerBasis(c, f, system, 0, 0)
//	if err := res.Err(); err != nil {
//	    log.Fatal(err)
//	}
//	basis := goanf.ReducedGrobnerBasis(c, f, res.Basis)
//	fmt.Println(goanf.FormatAll(f, basis)) // [x0 x1 x2]
//
// # Performance Considerations
//
// A Forest and its Cache are not safe for concurrent use. Create one pair
// per computation and pass it to every call. Nodes are never removed while
// a computation runs; call Compact between independent computations to
// release nodes that are no longer referenced.
package goanf

import (
	"fmt"
	"log/slog"
)

// nodeEntry is one arena slot.
type nodeEntry struct {
	v      Variable
	hi     NodeID
	lo     NodeID
	degree uint32
}

// ForestStats reports the size and hash-consing activity of a Forest.
type ForestStats struct {
	// Nodes is the number of arena slots, including the two constants.
	Nodes int

	// Pages is the number of per-variable node pages allocated.
	Pages int

	// PageSlots is the total slot count across all pages.
	PageSlots int

	// UniqueAccess counts node constructions that reached the page lookup.
	UniqueAccess uint64

	// UniqueHit counts lookups that returned an existing node.
	UniqueHit uint64

	// InlineBuilt counts constructions answered with an inline NodeID.
	InlineBuilt uint64

	// Generation increments each time Compact renumbers the arena.
	Generation uint64
}

type sparsityKey struct {
	id    NodeID
	bound int
}

// Forest owns the node arena of a family of polynomials.
//
// The Forest ensures that:
//   - Nodes with a False hi branch are never materialized
//   - Variables strictly increase along every edge
//   - Equal (v, hi, lo) triples always map to the same NodeID
//   - No node exceeds the configured sparsity bound
//
// NodeIDs stay valid for the lifetime of the Forest, or until Compact.
type Forest struct {
	// nodes stores arena entries indexed by NodeID. Slots 0 and 1 are the
	// constants and hold no branches.
	nodes []nodeEntry

	// pages maps (hi, lo) to arena IDs, one page per variable in use.
	pages map[Variable]*nodePage

	// sparsity is the maximum degree of any node.
	sparsity int

	// inlineVars is the number of variables eligible for inline IDs.
	inlineVars int

	// truncated memoizes EnforceSparsity.
	truncated map[sparsityKey]NodeID

	generation uint64
	stats      ForestStats

	config *Config
	logger *slog.Logger
}

// NewForest creates a new, empty Forest holding only the two constants.
//
// Parameters:
//   - opts: Configuration options (WithSparsity, WithLogger, etc.)
//
// Example:
//
//	f := NewForest(WithSparsity(4), WithLogger(slog.Default()))
func NewForest(opts ...Option) *Forest {
	return newForest(newConfig(opts...))
}

func newForest(cfg *Config) *Forest {
	return &Forest{
		nodes:      make([]nodeEntry, 2, 1024),
		pages:      make(map[Variable]*nodePage),
		sparsity:   cfg.Sparsity,
		inlineVars: cfg.InlineVariables,
		truncated:  make(map[sparsityKey]NodeID),
		config:     cfg,
		logger:     cfg.Logger,
	}
}

// Sparsity returns the degree truncation bound (Unbounded by default).
func (f *Forest) Sparsity() int {
	return f.sparsity
}

// Size returns the number of arena slots, including the two constants.
// Inline nodes take no slot and are not counted.
func (f *Forest) Size() int {
	return len(f.nodes)
}

// Generation returns the compaction generation of the Forest.
func (f *Forest) Generation() uint64 {
	return f.generation
}

// Logger returns the structured logger configured for the Forest.
func (f *Forest) Logger() *slog.Logger {
	return f.logger
}

// Stats returns a snapshot of the Forest's size and hash-consing counters.
func (f *Forest) Stats() ForestStats {
	s := f.stats
	s.Nodes = len(f.nodes)
	s.Generation = f.generation
	for _, p := range f.pages {
		s.Pages++
		s.PageSlots += p.size()
	}
	return s
}

// Constant returns True or False.
func (f *Forest) Constant(value bool) NodeID {
	if value {
		return True
	}
	return False
}

// Term returns the single-variable polynomial v.
func (f *Forest) Term(v Variable) NodeID {
	return f.mk(v, True, False)
}

// ToNodeID returns the canonical NodeID of a node.
//
// This method is the only way nodes enter the arena:
//  1. A node with Hi == False collapses to Lo (reduction rule)
//  2. If a sparsity bound is active, Hi is truncated to bound-1
//  3. Bare variable terms become inline IDs when eligible
//  4. Otherwise the per-variable page returns the existing ID or allocates one
//
// Panics with ErrPreconditionViolation if the node breaks the variable
// ordering or refers to IDs the Forest never issued.
func (f *Forest) ToNodeID(n Node) NodeID {
	switch n.Kind {
	case KindFalse:
		return False
	case KindTrue:
		return True
	case KindVariable:
		f.check(n.Hi)
		f.check(n.Lo)
		return f.mk(n.Var, n.Hi, n.Lo)
	default:
		precondition("unknown node kind %d", n.Kind)
		return False
	}
}

// ToNode decodes a NodeID.
//
// The constants decode to terminal nodes. Callers that require a variable
// node should check IsTerminal or use Lookup.
func (f *Forest) ToNode(id NodeID) Node {
	switch id {
	case False:
		return Node{Kind: KindFalse}
	case True:
		return Node{Kind: KindTrue}
	}
	v, hi, lo := f.split(id)
	return NewNode(v, hi, lo)
}

// Lookup decodes a NodeID that must name a variable node.
//
// Returns ErrInvalidNode if:
//   - id is one of the constants
//   - id was never issued by this Forest
func (f *Forest) Lookup(id NodeID) (Node, error) {
	if id.IsConstant() {
		return Node{}, fmt.Errorf("%w: %s is a constant", ErrInvalidNode, id)
	}
	if !f.valid(id) {
		return Node{}, fmt.Errorf("%w: node ID %s", ErrInvalidNode, id)
	}
	return f.ToNode(id), nil
}

// Degree returns the length of the longest hi-chain below id, which is the
// total degree of the polynomial. Constants have degree 0.
func (f *Forest) Degree(id NodeID) int {
	switch {
	case id.IsConstant():
		return 0
	case id.IsInline():
		return max(1, f.Degree(inlineLo(id)))
	default:
		return int(f.nodes[id].degree)
	}
}

// EnforceSparsity drops every term of id whose degree exceeds bound.
//
// EnforceSparsity(id, 0) is always the constant term of id. The result is
// canonical and memoized on the Forest.
func (f *Forest) EnforceSparsity(id NodeID, bound int) NodeID {
	if bound < 0 {
		precondition("negative sparsity bound %d", bound)
	}
	if id.IsConstant() || f.Degree(id) <= bound {
		return id
	}

	key := sparsityKey{id: id, bound: bound}
	if r, ok := f.truncated[key]; ok {
		return r
	}

	v, hi, lo := f.split(id)
	var result NodeID
	if bound == 0 {
		result = f.EnforceSparsity(lo, 0)
	} else {
		result = f.mk(v, f.EnforceSparsity(hi, bound-1), f.EnforceSparsity(lo, bound))
	}

	f.truncated[key] = result
	return result
}

// Evaluate substitutes an assignment into id. Variables in the assignment
// are true and all others false.
func (f *Forest) Evaluate(id NodeID, assignment Assignment) bool {
	memo := make(map[NodeID]bool)
	return f.evaluate(id, assignment, memo)
}

func (f *Forest) evaluate(id NodeID, assignment Assignment, memo map[NodeID]bool) bool {
	switch id {
	case False:
		return false
	case True:
		return true
	}
	if r, ok := memo[id]; ok {
		return r
	}

	v, hi, lo := f.split(id)
	if v == terminalVar {
		invariant("evaluation reached %s without a variable", id)
	}

	result := f.evaluate(lo, assignment, memo)
	if assignment.Has(v) && f.evaluate(hi, assignment, memo) {
		result = !result
	}

	memo[id] = result
	return result
}

// Compact releases every node not reachable from roots and renumbers the
// survivors. It returns the new IDs of roots, in order.
//
// All other NodeIDs obtained from this Forest become invalid. Caches used
// with the Forest reset themselves on their next use. Call Compact only
// between independent computations.
func (f *Forest) Compact(roots ...NodeID) []NodeID {
	before := len(f.nodes)

	next := newForest(f.config)
	moved := map[NodeID]NodeID{False: False, True: True}

	var relocate func(id NodeID) NodeID
	relocate = func(id NodeID) NodeID {
		if r, ok := moved[id]; ok {
			return r
		}
		v, hi, lo := f.split(id)
		hi = relocate(hi)
		lo = relocate(lo)
		r := next.mk(v, hi, lo)
		moved[id] = r
		return r
	}

	out := make([]NodeID, len(roots))
	for i, root := range roots {
		f.check(root)
		out[i] = relocate(root)
	}

	f.nodes = next.nodes
	f.pages = next.pages
	f.truncated = next.truncated
	f.generation++

	f.logger.Info("forest compacted",
		slog.Int("nodes_before", before),
		slog.Int("nodes_after", len(f.nodes)),
		slog.Uint64("generation", f.generation))

	return out
}

// mk is the canonicalizing constructor behind ToNodeID.
func (f *Forest) mk(v Variable, hi, lo NodeID) NodeID {
	if hi == False {
		return lo
	}
	if f.sparsity != Unbounded {
		if f.sparsity == 0 {
			return lo
		}
		hi = f.EnforceSparsity(hi, f.sparsity-1)
		if hi == False {
			return lo
		}
	}

	if v == terminalVar || v >= f.varOf(hi) || v >= f.varOf(lo) {
		precondition("variable x%d must precede its branches (hi=%s, lo=%s)", v, hi, lo)
	}

	if hi == True && int64(v) < int64(f.inlineVars) && !lo.IsInline() && lo <= inlineLoMask {
		f.stats.InlineBuilt++
		return makeInline(v, lo)
	}

	page := f.page(v)
	next := NodeID(len(f.nodes))
	before := page.size()

	f.stats.UniqueAccess++
	id, inserted := page.getOrInsert(hi, lo, next)
	if !inserted {
		f.stats.UniqueHit++
		return id
	}

	if page.size() != before {
		f.logger.Debug("node page grown",
			slog.Uint64("variable", uint64(v)),
			slog.Int("old_size", before),
			slog.Int("new_size", page.size()))
	}

	degree := max(f.Degree(hi)+1, f.Degree(lo))
	f.nodes = append(f.nodes, nodeEntry{v: v, hi: hi, lo: lo, degree: uint32(degree)})
	return id
}

// page returns the node page of v, allocating it on first use.
func (f *Forest) page(v Variable) *nodePage {
	p, ok := f.pages[v]
	if !ok {
		p = newNodePage(f.config.PageSize)
		f.pages[v] = p
	}
	return p
}

// split decomposes id into its variable and branches. The constants split
// into (terminalVar, False, id) so they order after every variable.
func (f *Forest) split(id NodeID) (Variable, NodeID, NodeID) {
	switch {
	case id.IsConstant():
		return terminalVar, False, id
	case id.IsInline():
		return inlineVar(id), True, inlineLo(id)
	case uint64(id) >= uint64(len(f.nodes)):
		invariant("node ID %s outside arena of %d nodes", id, len(f.nodes))
	}
	e := f.nodes[id]
	return e.v, e.hi, e.lo
}

// varOf returns the top variable of id, or terminalVar for constants.
func (f *Forest) varOf(id NodeID) Variable {
	v, _, _ := f.split(id)
	return v
}

// valid reports whether id was issued by this Forest.
func (f *Forest) valid(id NodeID) bool {
	switch {
	case id.IsConstant():
		return true
	case id.IsInline():
		lo := inlineLo(id)
		return int64(inlineVar(id)) < int64(f.inlineVars) && !lo.IsInline() && f.valid(lo) &&
			inlineVar(id) < f.varOf(lo)
	default:
		return uint64(id) < uint64(len(f.nodes))
	}
}

func (f *Forest) check(id NodeID) {
	if !f.valid(id) {
		precondition("node ID %s was not issued by this forest", id)
	}
}

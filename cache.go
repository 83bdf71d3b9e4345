package goanf

// memo is one operation's memo table.
type memo[K comparable, V any] struct {
	table  map[K]V
	hits   uint64
	misses uint64
}

func (m *memo[K, V]) get(key K) (V, bool) {
	v, ok := m.table[key]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return v, ok
}

func (m *memo[K, V]) put(key K, value V) V {
	if m.table == nil {
		m.table = make(map[K]V)
	}
	m.table[key] = value
	return value
}

func (m *memo[K, V]) stats(name string) OperationStats {
	return OperationStats{Operation: name, Entries: len(m.table), Hits: m.hits, Misses: m.misses}
}

// pair keys a binary operation after minmax ordering when it commutes.
type pair struct {
	lhs NodeID
	rhs NodeID
}

// boundedPair keys multiplication under a sparsity bound.
type boundedPair struct {
	lhs   NodeID
	rhs   NodeID
	bound int
}

// OperationStats reports the activity of one memo table.
type OperationStats struct {
	// Operation names the memoized operation, such as "add" or "multiply".
	Operation string

	// Entries is the number of memoized results.
	Entries int

	// Hits and Misses count lookups since the table was last reset.
	Hits   uint64
	Misses uint64
}

// Cache holds the memo tables of the polynomial algebra.
//
// A Cache is passed alongside its Forest to every operation. Because a
// NodeID determines its polynomial, a memoized result is valid no matter
// which call produced it. Tables only grow; the Cache resets itself when
// it is used with a different Forest or after the Forest was compacted.
type Cache struct {
	forest     *Forest
	generation uint64

	add       memo[pair, NodeID]
	multiply  memo[boundedPair, NodeID]
	divide    memo[pair, NodeID]
	lead      memo[NodeID, NodeID]
	termCount memo[NodeID, int]
	disjoint  memo[pair, bool]
	divides   memo[pair, bool]
	lcm       memo[pair, NodeID]
	spoly     memo[pair, NodeID]
	support   memo[NodeID, NodeID]
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Reset drops every memoized result and clears the counters.
func (c *Cache) Reset() {
	*c = Cache{forest: c.forest, generation: c.generation}
}

// Stats returns per-operation table sizes and hit counts.
func (c *Cache) Stats() []OperationStats {
	return []OperationStats{
		c.add.stats("add"),
		c.multiply.stats("multiply"),
		c.divide.stats("divide"),
		c.lead.stats("lead"),
		c.termCount.stats("term_count"),
		c.disjoint.stats("disjoint"),
		c.divides.stats("divides"),
		c.lcm.stats("lcm"),
		c.spoly.stats("spoly"),
		c.support.stats("support"),
	}
}

// bind attaches c to f, resetting it if it last served another forest or
// an older generation of f.
func (c *Cache) bind(f *Forest) {
	if c.forest == f && c.generation == f.generation {
		return
	}
	*c = Cache{forest: f, generation: f.generation}
}

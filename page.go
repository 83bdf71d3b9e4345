package goanf

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// maxDisplacement bounds how far a key may sit from its home slot before
// the page doubles.
const maxDisplacement = 8

// emptySlot marks an unused page slot. Arena IDs never carry the inline tag.
const emptySlot = inlineTag

type pageSlot struct {
	id NodeID
	hi NodeID
	lo NodeID
}

// nodePage is an open-addressing table mapping (hi, lo) to the arena ID of
// the node with that branch pair. The Forest keeps one page per variable,
// so the variable is implied by the page and never stored.
type nodePage struct {
	slots []pageSlot
	used  int
}

func newNodePage(size int) *nodePage {
	p := &nodePage{slots: make([]pageSlot, size)}
	for i := range p.slots {
		p.slots[i].id = emptySlot
	}
	return p
}

// hashBranches hashes a branch pair with xxhash.
func hashBranches(hi, lo NodeID) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(hi))
	binary.LittleEndian.PutUint64(buf[8:], uint64(lo))
	return xxhash.Sum64(buf[:])
}

// getOrInsert returns the ID stored for (hi, lo). If the pair is absent, it
// records next under the pair and reports inserted == true.
func (p *nodePage) getOrInsert(hi, lo, next NodeID) (id NodeID, inserted bool) {
	h := hashBranches(hi, lo)
	for {
		mask := uint64(len(p.slots) - 1)
		for delta := uint64(0); delta <= maxDisplacement; delta++ {
			slot := &p.slots[(h+delta)&mask]
			if slot.id == emptySlot {
				*slot = pageSlot{id: next, hi: hi, lo: lo}
				p.used++
				return next, true
			}
			if slot.hi == hi && slot.lo == lo {
				return slot.id, false
			}
		}
		p.grow()
	}
}

// grow doubles the page until every stored entry fits within
// maxDisplacement of its home slot.
func (p *nodePage) grow() {
	old := p.slots
	size := len(old) << 1
	for {
		p.slots = make([]pageSlot, size)
		for i := range p.slots {
			p.slots[i].id = emptySlot
		}
		if p.reinsert(old) {
			return
		}
		size <<= 1
	}
}

func (p *nodePage) reinsert(entries []pageSlot) bool {
	mask := uint64(len(p.slots) - 1)
	for _, e := range entries {
		if e.id == emptySlot {
			continue
		}
		h := hashBranches(e.hi, e.lo)
		placed := false
		for delta := uint64(0); delta <= maxDisplacement; delta++ {
			slot := &p.slots[(h+delta)&mask]
			if slot.id == emptySlot {
				*slot = e
				placed = true
				break
			}
		}
		if !placed {
			return false
		}
	}
	return true
}

// size returns the number of slots.
func (p *nodePage) size() int {
	return len(p.slots)
}

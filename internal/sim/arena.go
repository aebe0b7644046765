package sim

// Handle names an enemy slot without pinning its storage location. The
// index is recycled after release; the generation is not, so a handle held
// across a despawn resolves to nothing instead of to whichever enemy
// inherited the slot. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the invalid zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

type arenaSlot struct {
	gen      uint32
	denseIdx int32
}

// enemyArena keeps live enemies packed in a dense slice for iteration while
// lookups go through sparse slots carrying generation counters. Removal
// swap-removes from the dense slice and bumps the slot generation.
type enemyArena struct {
	slots []arenaSlot
	dense []*enemyState
	free  []uint32
}

func newEnemyArena() *enemyArena {
	return &enemyArena{}
}

func (a *enemyArena) alloc(e *enemyState) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, arenaSlot{})
	}
	slot := &a.slots[idx]
	slot.gen++
	slot.denseIdx = int32(len(a.dense))
	h := Handle{index: idx, gen: slot.gen}
	e.handle = h
	a.dense = append(a.dense, e)
	return h
}

func (a *enemyArena) get(h Handle) (*enemyState, bool) {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil, false
	}
	slot := a.slots[h.index]
	if slot.gen != h.gen || slot.denseIdx < 0 {
		return nil, false
	}
	return a.dense[slot.denseIdx], true
}

// release frees the slot behind h. Stale or zero handles are ignored so
// callers can release unconditionally after a kill pass.
func (a *enemyArena) release(h Handle) bool {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return false
	}
	slot := &a.slots[h.index]
	if slot.gen != h.gen || slot.denseIdx < 0 {
		return false
	}
	di := int(slot.denseIdx)
	last := len(a.dense) - 1
	if di != last {
		moved := a.dense[last]
		a.dense[di] = moved
		a.slots[moved.handle.index].denseIdx = int32(di)
	}
	a.dense[last] = nil
	a.dense = a.dense[:last]
	slot.gen++
	slot.denseIdx = -1
	a.free = append(a.free, h.index)
	return true
}

func (a *enemyArena) len() int {
	return len(a.dense)
}

func (a *enemyArena) at(i int) *enemyState {
	return a.dense[i]
}

// forEach visits live enemies in dense order. The visitor must not alloc or
// release during iteration; the step loop batches removals instead.
func (a *enemyArena) forEach(fn func(*enemyState)) {
	for _, e := range a.dense {
		fn(e)
	}
}

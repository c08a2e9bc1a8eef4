package cairo

import (
	"sync"

	"github.com/gogpu/cairo/internal/fault"
)

// UserDataKey identifies a user data slot. Only the address of a key is
// used; declare keys as package level variables:
//
//	var myKey cairo.UserDataKey
//	face.SetUserData(&myKey, v, nil)
type UserDataKey struct {
	_ byte // keeps distinct keys at distinct addresses
}

// DestroyFunc is called with the attached value when it is replaced,
// removed or when the owning handle is finalized.
type DestroyFunc func(data any)

type userDataSlot struct {
	key     *UserDataKey
	data    any
	destroy DestroyFunc
}

// userDataArray is the per handle list of user data slots.
// It is safe for concurrent use.
type userDataArray struct {
	mu    sync.Mutex
	slots []userDataSlot
}

// set attaches data under key. A previous value under the same key is
// destroyed first. A nil data removes the key.
func (a *userDataArray) set(key *UserDataKey, data any, destroy DestroyFunc) error {
	if key == nil {
		return StatusNullPointer
	}

	a.mu.Lock()
	idx := -1
	for i := range a.slots {
		if a.slots[i].key == key {
			idx = i
			break
		}
	}

	var old userDataSlot
	switch {
	case idx >= 0 && data == nil:
		old = a.slots[idx]
		a.slots = append(a.slots[:idx], a.slots[idx+1:]...)
	case idx >= 0:
		old = a.slots[idx]
		a.slots[idx] = userDataSlot{key: key, data: data, destroy: destroy}
	case data == nil:
		// nothing stored, nothing to remove
	default:
		if len(a.slots) == cap(a.slots) && fault.Fail() {
			a.mu.Unlock()
			return ErrNoMemory
		}
		a.slots = append(a.slots, userDataSlot{key: key, data: data, destroy: destroy})
	}
	a.mu.Unlock()

	// Callbacks run unlocked so they may touch the handle again.
	if old.destroy != nil {
		old.destroy(old.data)
	}
	return nil
}

// get returns the value attached under key.
func (a *userDataArray) get(key *UserDataKey) (any, bool) {
	if key == nil {
		return nil, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range a.slots {
		if s.key == key {
			return s.data, true
		}
	}
	return nil, false
}

// len returns the number of attached values.
func (a *userDataArray) len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.slots)
}

// detach removes every slot and returns them. The caller runs the destroy
// callbacks with runDestroys once it no longer holds its own locks.
func (a *userDataArray) detach() []userDataSlot {
	a.mu.Lock()
	slots := a.slots
	a.slots = nil
	a.mu.Unlock()
	return slots
}

// fini detaches every value and calls its destroy callback once.
func (a *userDataArray) fini() {
	runDestroys(a.detach())
}

func runDestroys(slots []userDataSlot) {
	for _, s := range slots {
		if s.destroy != nil {
			s.destroy(s.data)
		}
	}
}

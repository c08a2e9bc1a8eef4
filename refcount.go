package cairo

import "sync/atomic"

// referenceCountInvalid marks static error objects. They are shared, never
// counted and never freed.
const referenceCountInvalid = -1

// refCount is the ownership count of a shared handle.
type refCount struct {
	n atomic.Int32
}

func (r *refCount) init(n int32) { r.n.Store(n) }

// invalid reports whether the handle is a static error object.
func (r *refCount) invalid() bool { return r.n.Load() == referenceCountInvalid }

func (r *refCount) get() int32 { return r.n.Load() }

// inc adds one ownership unit. It panics when the handle was already
// released, which is a use-after-destroy by the caller.
func (r *refCount) inc() {
	if r.n.Add(1) <= 1 {
		panic("cairo: reference to a destroyed handle")
	}
}

// incFromZero adds one unit to a handle whose count may have just reached
// zero. Callers must hold the lock of the table that owns the handle so the
// release path cannot run concurrently.
func (r *refCount) incFromZero() {
	r.n.Add(1)
}

// dec removes one unit and reports whether it was the last one.
func (r *refCount) dec() bool {
	n := r.n.Add(-1)
	if n < 0 {
		panic("cairo: handle destroyed more times than it was referenced")
	}
	return n == 0
}

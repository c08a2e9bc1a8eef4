package cairo

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
)

// leakTrackingEnv enables leak tracking at start up when set to "1".
const leakTrackingEnv = "CAIRO_DEBUG_LEAKS"

// Leak is one outstanding ownership unit: a New, Copy or Reference call
// whose matching Destroy has not happened yet.
type Leak struct {
	// Kind is the handle type, e.g. "FontFace".
	Kind string
	// ID identifies the handle; all units of one handle share it.
	ID uint64
	// Caller is the file:line that acquired the unit.
	Caller string
}

// String formats the leak for diagnostics.
func (l Leak) String() string {
	return fmt.Sprintf("%s#%d acquired at %s", l.Kind, l.ID, l.Caller)
}

// leakTracker records outstanding units per handle id.
type leakTracker struct {
	enabled atomic.Bool
	mu      sync.Mutex
	units   map[uint64][]Leak
}

var (
	leaks    = leakTracker{units: make(map[uint64][]Leak)}
	handleID atomic.Uint64
)

func init() {
	if os.Getenv(leakTrackingEnv) == "1" {
		leaks.enabled.Store(true)
	}
}

// nextHandleID returns a process unique id for a new handle.
func nextHandleID() uint64 {
	return handleID.Add(1)
}

// SetLeakTracking turns leak tracking on or off. It is meant for debugging
// and tests; tracking captures a caller frame on every acquisition.
// Turning tracking off discards what was recorded.
func SetLeakTracking(enabled bool) {
	leaks.mu.Lock()
	leaks.enabled.Store(enabled)
	if !enabled {
		leaks.units = make(map[uint64][]Leak)
	}
	leaks.mu.Unlock()
}

// LeakTrackingEnabled reports whether leak tracking is on.
func LeakTrackingEnabled() bool {
	return leaks.enabled.Load()
}

// acquire records one unit for the handle. skip is the number of frames
// between the public API call and acquire.
func (t *leakTracker) acquire(kind string, id uint64, skip int) {
	if !t.enabled.Load() {
		return
	}
	caller := "unknown"
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		caller = fmt.Sprintf("%s:%d", file, line)
	}

	t.mu.Lock()
	t.units[id] = append(t.units[id], Leak{Kind: kind, ID: id, Caller: caller})
	t.mu.Unlock()
}

// watch reports, once p is garbage collected, any unit still recorded for
// id. Handles are plain Go memory, so a missed Destroy leaks nothing, but it
// still breaks the pairing contract other owners rely on.
func watch[T any](p *T, kind string, id uint64) {
	if !leaks.enabled.Load() {
		return
	}
	runtime.AddCleanup(p, func(id uint64) {
		leaks.mu.Lock()
		n := len(leaks.units[id])
		delete(leaks.units, id)
		leaks.mu.Unlock()
		if n > 0 {
			Logger().Warn("cairo: handle collected without Destroy",
				slog.String("kind", kind),
				slog.Uint64("id", id),
				slog.Int("units", n))
		}
	}, id)
}

// release drops one unit for the handle, the most recent first.
func (t *leakTracker) release(id uint64) {
	if !t.enabled.Load() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	units := t.units[id]
	switch len(units) {
	case 0:
	case 1:
		delete(t.units, id)
	default:
		t.units[id] = units[:len(units)-1]
	}
}

// forget drops every unit recorded for the handle.
func (t *leakTracker) forget(id uint64) {
	if !t.enabled.Load() {
		return
	}
	t.mu.Lock()
	delete(t.units, id)
	t.mu.Unlock()
}

// Outstanding returns every unit recorded by the leak tracker and not yet
// released, ordered by handle id. It returns nil when tracking is off.
func Outstanding() []Leak {
	if !leaks.enabled.Load() {
		return nil
	}
	leaks.mu.Lock()
	var out []Leak
	for _, units := range leaks.units {
		out = append(out, units...)
	}
	leaks.mu.Unlock()

	slices.SortStableFunc(out, func(a, b Leak) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// ReportLeaks logs one warning per outstanding unit and returns the number
// of leaks found. A nil logger uses Logger(). Call it at shutdown.
func ReportLeaks(logger *slog.Logger) int {
	if logger == nil {
		logger = Logger()
	}
	out := Outstanding()
	for _, l := range out {
		logger.Warn("cairo: leaked handle",
			slog.String("kind", l.Kind),
			slog.Uint64("id", l.ID),
			slog.String("caller", l.Caller))
	}
	return len(out)
}

// DebugResetStaticData releases all cached static data: the toy font face
// table, the registered font families and the scaled font holdovers.
//
// Faces and scaled fonts the caller still owns stay valid; they are only
// removed from the tables so new requests build fresh objects.
func DebugResetStaticData() {
	resetToyFontFaces()
	resetFontFamilies()
	resetScaledFontMap()
}

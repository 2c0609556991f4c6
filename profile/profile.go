package profile

import (
	"iter"
	"maps"
	"slices"
)

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory
	Quiet bool   // suppress the profiler's own log lines
}

// Start begins profiling. It returns a no-op Stopper when p.Mode is empty,
// unknown, or profiling is not compiled in.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Modes returns the supported profiling modes in sorted order.
func Modes() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(modes)))
}

// Enabled reports whether profiling is compiled in.
func Enabled() bool { return len(modes) > 0 }

type ignore struct{}

func (ignore) Stop() {}

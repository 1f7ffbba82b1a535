// Package profile provides optional runtime profiling for the zov
// application.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (default), all operations are no-ops with zero
// runtime overhead.
//
// The following modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically, and
// analyze the written files with "go tool pprof".
//
//	# Enable CPU profiling with custom output directory
//	zov --pprof-mode cpu --pprof-dir ./profiles eval config.zov
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

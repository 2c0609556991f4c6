// Package profile starts and stops runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	litcalc --pprof-mode=cpu --pprof-dir=/tmp/litcalc report.md
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
// Profiles are read with go tool pprof, for example:
//
//	go tool pprof -http=: /tmp/litcalc/cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

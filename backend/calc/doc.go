// Package calc is a unit-aware calculator backend.
//
// A [Session] evaluates newline-separated statements:
//
//	let NAME = EXPR               bind a variable
//	unit NAME[, ALIAS...] = EXPR  define a unit
//	use MODULE                    load a module once per session
//	EXPR [-> UNIT]                evaluate, optionally converting
//
// Expressions are rewritten so that juxtaposed terms multiply ("2 kg m")
// and bind tighter than division ("100 km / 2 h"), then compiled with
// expr-lang/expr. Every literal and name becomes an environment entry
// holding a [units.Quantity], and every arithmetic and comparison operator
// is overloaded onto quantity methods.
//
// Modules are files named MODULE.calc found on the session's search path,
// falling back to modules embedded in the binary (such as "prelude").
package calc

// Package units implements dimensioned quantities for the calculator
// backend.
//
// A [Quantity] is a float64 magnitude paired with a [Compound] unit. Every
// unit factor carries its scale relative to coherent SI base units and its
// [Dimension], so arithmetic can check compatibility and conversion is a
// ratio of scales. The [Registry] resolves unit names, including SI
// prefixes, long names, and plurals.
package units

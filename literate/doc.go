// Package literate evaluates marked lines in a text document and writes
// the document back with each result appended to its line.
//
// A line containing the marker (default "#=") closes a statement. The text
// before the marker, joined with every unmarked line since the previous
// marker, is sent to a [backend.Interpreter] as one batch. Output is the
// input with the text after each marker replaced by the batch result:
//
//	let voltage = 1 V + 1 V -> mV
//	voltage#= 2000 mV
//
// Unmarked lines are echoed unchanged. A batch left open at the end of the
// input is dropped, or reported as [ErrUnterminated] in strict mode.
package literate

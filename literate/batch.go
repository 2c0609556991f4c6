package literate

import "strings"

// batch holds the lines of a statement that has not been closed by a
// marker.
type batch struct {
	lines []string
}

func (b *batch) add(s string) { b.lines = append(b.lines, s) }

func (b *batch) len() int { return len(b.lines) }

// flush returns the lines joined by newlines and empties the batch.
func (b *batch) flush() string {
	code := strings.Join(b.lines, "\n")
	b.lines = b.lines[:0]

	return code
}

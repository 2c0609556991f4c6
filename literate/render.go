package literate

import "io"

// renderer writes output lines as they are produced. The first write error
// is kept and every later write is skipped.
type renderer struct {
	w   io.Writer
	err error
}

func (r *renderer) write(parts ...string) error {
	for _, s := range parts {
		if r.err != nil {
			break
		}

		_, r.err = io.WriteString(r.w, s)
	}

	if r.err != nil {
		return ErrWrite.Wrap(r.err)
	}

	return nil
}

// line echoes an unmarked line.
func (r *renderer) line(s string) error { return r.write(s, "\n") }

// fragment writes the evaluable part of a marked line and the marker.
func (r *renderer) fragment(expr, marker string) error {
	return r.write(expr, marker)
}

// result completes a marked line.
func (r *renderer) result(s string) error { return r.write(" ", s, "\n") }

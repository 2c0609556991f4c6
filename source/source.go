// Package source reads documents line by line.
//
// Every sequence returned by this package is forward-only and single-use:
// ranging over it consumes the underlying reader.
package source

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/ardnew/litcalc/pkg"
)

var (
	ErrOpen = pkg.NewError("open source")
	ErrRead = pkg.NewError("read source")
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Lines returns the lines of r without their terminators. A trailing "\r"
// is removed, a final line without a newline is still produced, and a line
// that is not valid UTF-8 is produced as the empty string. A read error is
// yielded once, after which the sequence ends.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br := bufio.NewReader(r)

		for {
			line, err := br.ReadString('\n')

			eof := errors.Is(err, io.EOF)
			if err != nil && !eof {
				yield("", ErrRead.Wrap(err))

				return
			}

			if eof && line == "" {
				return
			}

			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")

			if !utf8.ValidString(line) {
				line = ""
			}

			if !yield(line, nil) || eof {
				return
			}
		}
	}
}

// String returns the lines of s. See [Lines].
func String(s string) iter.Seq2[string, error] {
	return Lines(strings.NewReader(s))
}

type input struct {
	name string
	r    io.Reader
}

// Set is an ordered list of inputs read one after another.
type Set struct {
	inputs []input
	files  []*os.File
}

// fileKey identifies a file by device and inode, so the same file reached
// through different paths or symlinks is read once.
type fileKey struct {
	dev uint64
	ino uint64
}

// Open opens paths in order. Any number of [Stdin] entries select stdin
// once, read after every named file. A file named more than once is read
// once. Open fails if any named file cannot be opened.
func Open(paths []string, stdin io.Reader) (*Set, error) {
	var (
		set      Set
		useStdin bool
	)

	seen := make(map[fileKey]struct{})

	stdinKey, stdinIsFile := statKey(stdin)

	for _, path := range paths {
		if path == Stdin {
			useStdin = true

			continue
		}

		file, key, err := openFile(path)
		if err != nil {
			_ = set.Close()

			return nil, err
		}

		if stdinIsFile && key == stdinKey {
			useStdin = true

			_ = file.Close()

			continue
		}

		if _, dup := seen[key]; dup {
			_ = file.Close()

			continue
		}

		seen[key] = struct{}{}

		set.files = append(set.files, file)
		set.inputs = append(set.inputs, input{name: path, r: file})
	}

	if useStdin && stdin != nil {
		set.inputs = append(set.inputs, input{name: Stdin, r: stdin})
	}

	return &set, nil
}

func openFile(path string) (*os.File, fileKey, error) {
	fail := func(err error) (*os.File, fileKey, error) {
		return nil, fileKey{}, ErrOpen.Wrap(err).With(slog.String("path", path))
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fail(err)
	}

	file, err := os.Open(resolved)
	if err != nil {
		return fail(err)
	}

	key, ok := statKey(file)
	if !ok {
		_ = file.Close()

		return fail(errors.New("cannot identify file"))
	}

	return file, key, nil
}

func statKey(r io.Reader) (fileKey, bool) {
	f, ok := r.(interface{ Stat() (os.FileInfo, error) })
	if !ok {
		return fileKey{}, false
	}

	info, err := f.Stat()
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// Names returns the input names in reading order.
func (s *Set) Names() []string {
	names := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		names[i] = in.name
	}

	return names
}

// Lines chains the lines of every input. A read error names the input it
// came from and ends the sequence.
func (s *Set) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, in := range s.inputs {
			for line, err := range Lines(in.r) {
				if err != nil {
					yield("", pkg.WrapError(err).With(slog.String("source", in.name)))

					return
				}

				if !yield(line, nil) {
					return
				}
			}
		}
	}
}

// Close closes every opened file. Stdin is left open.
func (s *Set) Close() error {
	var errs []error

	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	s.files = nil

	return errors.Join(errs...)
}

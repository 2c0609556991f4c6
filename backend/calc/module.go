package calc

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/litcalc/units"
)

// ModuleExt is the file extension of module files.
const ModuleExt = ".calc"

//go:embed modules/*.calc
var embedded embed.FS

// EmbeddedModules lists the modules compiled into the binary.
func EmbeddedModules() []string {
	entries, _ := fs.ReadDir(embedded, "modules")

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ModuleExt))
	}

	return names
}

// findModule reads the source of the named module. Directories on the
// search path are consulted before the embedded modules.
func (s *Session) findModule(name string) (string, string, error) {
	if !units.ValidName(name) {
		return "", "", ErrModuleNotFound.With(slog.String("module", name))
	}

	for _, dir := range s.path {
		path := filepath.Join(dir, name+ModuleExt)

		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), path, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", ErrModule.Wrap(err).With(
				slog.String("module", name),
				slog.String("path", path),
			)
		}
	}

	data, err := embedded.ReadFile("modules/" + name + ModuleExt)
	if err != nil {
		return "", "", ErrModuleNotFound.With(
			slog.String("module", name),
			slog.Any("path", s.path),
		)
	}

	return string(data), "embedded:" + name, nil
}

// use loads a module unless it was loaded before in this session.
func (s *Session) use(ctx context.Context, name string) error {
	if s.loaded[name] {
		return nil
	}

	src, origin, err := s.findModule(name)
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "load module",
		slog.String("module", name),
		slog.String("origin", origin))

	// Marked before running so a module that uses itself terminates.
	s.loaded[name] = true

	if _, _, err := s.run(ctx, src); err != nil {
		delete(s.loaded, name)

		return ErrModule.Wrap(err).With(slog.String("module", name))
	}

	return nil
}

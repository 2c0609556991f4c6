package backend

import (
	"os"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/litcalc/pkg"
)

// PathEnv returns the environment variable listing module directories.
func PathEnv() string { return pkg.EnvPrefix() + "PATH" }

// SearchPath returns dirs followed by the directories listed in [PathEnv].
// Entries that are not existing directories are dropped.
func SearchPath(dirs ...string) []string {
	sep := string(os.PathListSeparator)

	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv())),
		mung.WithDelim(sep),
		mung.WithPrefixItems(dirs...),
	).String()

	var out []string

	for dir := range strings.SplitSeq(joined, sep) {
		if dir != "" && isDir(dir) {
			out = append(out, dir)
		}
	}

	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

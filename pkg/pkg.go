//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the litcalc module embedded at build
// time. It is printed by the version subcommand.
//
//go:embed VERSION
var version string

// Version returns the embedded version with surrounding whitespace removed.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command identifier. It appears in help text,
	// default config paths, and the module search path variable.
	Name = "litcalc"
	// Description is a short summary of the project used in help output.
	Description = "Evaluate calculations embedded in literate documents"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

// EnvPrefix returns the prefix used for environment variables recognized by
// the command, e.g. LITCALC_PATH.
func EnvPrefix() string { return strings.ToUpper(Name) + "_" }

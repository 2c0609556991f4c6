package cmd

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/litcalc/backend"
	"github.com/ardnew/litcalc/backend/calc"
	"github.com/ardnew/litcalc/literate"
	"github.com/ardnew/litcalc/log"
	"github.com/ardnew/litcalc/units"
)

// Units lists the units known to the calculator backend.
type Units struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
}

type unitRow struct {
	Name       string   `json:"name"              yaml:"name"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Dimension  string   `json:"dimension"         yaml:"dimension"`
	Scale      float64  `json:"scale"             yaml:"scale"`
	Prefixable bool     `json:"prefixable"        yaml:"prefixable"`
}

func makeUnitRows(us []units.Unit) []unitRow {
	rows := make([]unitRow, len(us))

	for i, u := range us {
		rows[i] = unitRow{
			Name:       u.Name,
			Aliases:    u.Aliases,
			Dimension:  u.Dim.String(),
			Scale:      u.Scale,
			Prefixable: u.Prefixable,
		}
	}

	return rows
}

// Run executes the units command.
func (u *Units) Run(ctx context.Context, s *Session) error {
	sess := calc.New(
		calc.WithSearchPath(backend.SearchPath(s.ModulePath...)...),
		calc.WithLogger(log.Default()),
	)

	if s.Prelude {
		err := literate.NewEvaluator(sess).Bootstrap(ctx, PreludeStatement)
		if err != nil {
			return err
		}
	}

	return u.write(StdioFrom(ctx).Out, makeUnitRows(sess.Registry().Units()))
}

func (u *Units) write(w io.Writer, rows []unitRow) error {
	var (
		out []byte
		err error
	)

	switch u.Format {
	case "json":
		out, err = json.MarshalIndent(rows, "", "  ")
		out = append(out, '\n')

	case "yaml":
		out, err = yaml.Marshal(rows)

	default:
		out = []byte(unitTable(rows).Render() + "\n")
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	if _, err := w.Write(out); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}

func unitTable(rows []unitRow) *table.Table {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("UNIT", "DIMENSION", "SCALE", "PREFIX", "ALIASES")

	for _, r := range rows {
		prefix := ""
		if r.Prefixable {
			prefix = "yes"
		}

		t.Row(
			r.Name,
			r.Dimension,
			units.FormatNumber(r.Scale),
			prefix,
			strings.Join(r.Aliases, ", "),
		)
	}

	return t
}


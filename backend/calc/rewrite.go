package calc

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/litcalc/units"
)

type refKind int

const (
	refVar refKind = iota
	refUnit
)

// ref is an environment entry created for a name in the source.
type ref struct {
	env  string
	name string
	kind refKind
	unit units.Quantity
}

// rewrite is the expr-lang source produced for one expression along with
// the environment entries it refers to.
type rewrite struct {
	source   string
	literals []units.Quantity
	refs     []ref
}

type rewriter struct {
	resolve func(name string) (ref, error)
	out     rewrite
	seen    map[string]string
}

func literalName(i int) string { return "__n" + strconv.Itoa(i) }

// env builds the environment for running the rewritten source with the
// current variable values.
func (rw rewrite) env(vars map[string]any) map[string]any {
	env := make(map[string]any, len(rw.literals)+len(rw.refs))

	for i, lit := range rw.literals {
		env[literalName(i)] = lit
	}

	for _, r := range rw.refs {
		switch r.kind {
		case refUnit:
			env[r.env] = r.unit
		case refVar:
			env[r.env] = vars[r.name]
		}
	}

	return env
}

func (r *rewriter) literal(v float64) string {
	name := literalName(len(r.out.literals))
	r.out.literals = append(r.out.literals, units.Number(v))

	return name
}

func (r *rewriter) name(n string) (string, error) {
	if env, ok := r.seen[n]; ok {
		return env, nil
	}

	ref, err := r.resolve(n)
	if err != nil {
		return "", err
	}

	prefix := "__v"
	if ref.kind == refUnit {
		prefix = "__u"
	}

	ref.env = prefix + strconv.Itoa(len(r.out.refs))
	r.out.refs = append(r.out.refs, ref)
	r.seen[n] = ref.env

	return ref.env, nil
}

// expr rewrites toks, splitting on the last top-level conversion arrow.
func (r *rewriter) expr(toks []token) (string, error) {
	i, err := lastArrow(toks)
	if err != nil {
		return "", err
	}

	if i < 0 {
		return r.sequence(toks)
	}

	if i == 0 || i == len(toks)-1 {
		return "", ErrSyntax.With(
			slog.String("reason", "conversion needs a value and a unit"),
			slog.Int("offset", toks[i].pos),
		)
	}

	left, err := r.expr(toks[:i])
	if err != nil {
		return "", err
	}

	right, err := r.expr(toks[i+1:])
	if err != nil {
		return "", err
	}

	return fnConvert + "(" + left + ", " + right + ")", nil
}

// sequence rewrites operands and operators. A run of adjacent operands is
// an implicit product, grouped so it binds tighter than any operator.
func (r *rewriter) sequence(toks []token) (string, error) {
	var b strings.Builder

	for i := 0; i < len(toks); {
		if !startsOperand(toks[i]) {
			switch toks[i].kind {
			case tokRParen, tokArrow:
				return "", ErrSyntax.With(
					slog.String("unexpected", toks[i].text),
					slog.Int("offset", toks[i].pos),
				)
			}

			b.WriteString(" " + toks[i].text + " ")
			i++

			continue
		}

		var terms []string

		for i < len(toks) && startsOperand(toks[i]) {
			term, n, err := r.operand(toks[i:])
			if err != nil {
				return "", err
			}

			terms = append(terms, term)
			i += n
		}

		if len(terms) == 1 {
			b.WriteString(terms[0])
		} else {
			b.WriteString("(" + strings.Join(terms, " * ") + ")")
		}
	}

	return strings.TrimSpace(b.String()), nil
}

func startsOperand(t token) bool {
	return t.kind == tokNumber || t.kind == tokIdent || t.kind == tokLParen
}

// operand rewrites a primary with an optional right-associative power
// suffix. It returns the number of tokens consumed.
func (r *rewriter) operand(toks []token) (string, int, error) {
	base, n, err := r.primary(toks)
	if err != nil {
		return "", 0, err
	}

	if n >= len(toks) || !isPower(toks[n]) {
		return base, n, nil
	}

	n++

	sign := ""
	if n < len(toks) && toks[n].kind == tokOp && (toks[n].text == "-" || toks[n].text == "+") {
		sign = toks[n].text
		n++
	}

	if n >= len(toks) || !startsOperand(toks[n]) {
		return "", 0, ErrSyntax.With(
			slog.String("reason", "missing exponent"),
			slog.Int("offset", toks[n-1].pos),
		)
	}

	exp, m, err := r.operand(toks[n:])
	if err != nil {
		return "", 0, err
	}

	return base + " ^ (" + sign + exp + ")", n + m, nil
}

func isPower(t token) bool {
	return t.kind == tokOp && (t.text == "^" || t.text == "**")
}

func (r *rewriter) primary(toks []token) (string, int, error) {
	t := toks[0]

	switch t.kind {
	case tokNumber:
		return r.literal(t.num), 1, nil

	case tokLParen:
		end, err := closing(toks)
		if err != nil {
			return "", 0, err
		}

		inner, err := r.expr(toks[1:end])
		if err != nil {
			return "", 0, err
		}

		if inner == "" {
			return "", 0, ErrSyntax.With(
				slog.String("reason", "empty parentheses"),
				slog.Int("offset", t.pos),
			)
		}

		return "(" + inner + ")", end + 1, nil
	}

	switch t.text {
	case "true", "false":
		return t.text, 1, nil
	}

	if _, ok := functions[t.text]; ok && len(toks) > 1 && toks[1].kind == tokLParen {
		end, err := closing(toks[1:])
		if err != nil {
			return "", 0, err
		}

		args, err := r.arguments(toks[2 : end+1])
		if err != nil {
			return "", 0, err
		}

		return t.text + "(" + args + ")", end + 2, nil
	}

	env, err := r.name(t.text)
	if err != nil {
		return "", 0, err
	}

	return env, 1, nil
}

func (r *rewriter) arguments(toks []token) (string, error) {
	var args []string

	depth, start := 0, 0

	for i := 0; i <= len(toks); i++ {
		if i < len(toks) {
			switch toks[i].kind {
			case tokLParen:
				depth++
			case tokRParen:
				depth--
			}

			if toks[i].kind != tokComma || depth != 0 {
				continue
			}
		}

		if i == start && i == len(toks) && len(args) == 0 {
			break
		}

		arg, err := r.expr(toks[start:i])
		if err != nil {
			return "", err
		}

		if arg == "" {
			return "", ErrSyntax.With(slog.String("reason", "empty argument"))
		}

		args = append(args, arg)
		start = i + 1
	}

	return strings.Join(args, ", "), nil
}

// closing returns the index of the parenthesis matching toks[0].
func closing(toks []token) (int, error) {
	depth := 0

	for i, t := range toks {
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, ErrSyntax.With(
		slog.String("reason", "unbalanced parentheses"),
		slog.Int("offset", toks[0].pos),
	)
}

func lastArrow(toks []token) (int, error) {
	depth, last := 0, -1

	for i, t := range toks {
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth < 0 {
				return 0, ErrSyntax.With(
					slog.String("unexpected", ")"),
					slog.Int("offset", t.pos),
				)
			}
		case tokArrow:
			if depth == 0 {
				last = i
			}
		}
	}

	return last, nil
}

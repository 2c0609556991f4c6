package calc

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/litcalc/units"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokArrow
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// Word operators are passed through to expr unchanged.
var wordOps = map[string]bool{"and": true, "or": true, "not": true}

// Operators are matched longest first.
var symbolOps = []struct{ in, out string }{
	{"->", ""},
	{"**", "**"},
	{"==", "=="},
	{"!=", "!="},
	{"<=", "<="},
	{">=", ">="},
	{"&&", "&&"},
	{"||", "||"},
	{"→", ""},
	{"×", "*"},
	{"÷", "/"},
	{"·", "*"},
	{"⋅", "*"},
	{"−", "-"},
	{"+", "+"},
	{"-", "-"},
	{"*", "*"},
	{"/", "/"},
	{"%", "%"},
	{"^", "^"},
	{"<", "<"},
	{">", ">"},
	{"!", "!"},
	{"?", "?"},
	{":", ":"},
}

var superscripts = map[rune]float64{'²': 2, '³': 3}

func tokenize(s string) ([]token, error) {
	var toks []token

	for i := 0; i < len(s); {
		c, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case unicode.IsSpace(c):
			i += size

		case c == '#':
			return toks, nil

		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i += size

		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i += size

		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i += size

		case isDigit(c) || (c == '.' && i+1 < len(s) && isDigit(rune(s[i+1]))):
			t, n, err := scanNumber(s, i)
			if err != nil {
				return nil, err
			}

			toks = append(toks, t)
			i += n

		case superscripts[c] != 0:
			toks = append(toks,
				token{kind: tokOp, text: "^", pos: i},
				token{kind: tokNumber, text: string(c), num: superscripts[c], pos: i},
			)
			i += size

		case units.IsNameRune(c):
			j := i + size
			for j < len(s) {
				r, n := utf8.DecodeRuneInString(s[j:])
				if !units.IsNameRune(r) {
					break
				}

				j += n
			}

			word := s[i:j]

			switch {
			case word == "to":
				toks = append(toks, token{kind: tokArrow, text: word, pos: i})
			case wordOps[word]:
				toks = append(toks, token{kind: tokOp, text: word, pos: i})
			default:
				toks = append(toks, token{kind: tokIdent, text: word, pos: i})
			}

			i = j

		default:
			t, n := scanOp(s, i)
			if n == 0 {
				return nil, ErrSyntax.With(
					slog.String("unexpected", string(c)),
					slog.Int("offset", i),
				)
			}

			toks = append(toks, t)
			i += n
		}
	}

	return toks, nil
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// scanNumber reads digits with optional underscores, a fraction, and an
// exponent. An "e" not followed by digits is left for the next token.
func scanNumber(s string, start int) (token, int, error) {
	i := start

	digits := func() {
		for i < len(s) && (isDigit(rune(s[i])) || s[i] == '_') {
			i++
		}
	}

	digits()

	if i < len(s) && s[i] == '.' {
		i++
		digits()
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}

		if j < len(s) && isDigit(rune(s[j])) {
			i = j
			digits()
		}
	}

	text := s[start:i]

	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return token{}, 0, ErrSyntax.Wrap(err).With(
			slog.String("number", text),
			slog.Int("offset", start),
		)
	}

	return token{kind: tokNumber, text: text, num: v, pos: start}, i - start, nil
}

func scanOp(s string, i int) (token, int) {
	for _, op := range symbolOps {
		if strings.HasPrefix(s[i:], op.in) {
			if op.out == "" {
				return token{kind: tokArrow, text: op.in, pos: i}, len(op.in)
			}

			return token{kind: tokOp, text: op.out, pos: i}, len(op.in)
		}
	}

	return token{}, 0
}

package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// commandPrefix starts a REPL command such as ":help".
const commandPrefix = ":"

// commands are the REPL commands without their prefix.
var commands = []string{"clear", "help", "names", "quit"}

// isWordBoundary reports whether r separates completable words. Operators,
// parentheses, and whitespace end a name; "_" and unit symbols do not.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', ',',
		'+', '-', '*', '/', '^', '%',
		'<', '>', '=', '!',
		'·', '×', '÷', '→':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte offsets in input.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// computeMatches ranks the candidates for the word at the cursor. A line
// starting with the command prefix completes command names; anything else
// completes names in scope. An empty word has no matches.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	if rest, ok := strings.CutPrefix(input, commandPrefix); ok {
		wordStart, wordEnd = len(commandPrefix), len(input)
		if rest == "" || strings.ContainsAny(rest, " \t") {
			return nil, wordStart, wordEnd
		}

		return fuzzy.Find(rest, commands), wordStart, wordEnd
	}

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" || len(m.names) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, m.names), wordStart, wordEnd
}

// renderCandidateBar builds the one-line completion bar, cut with an
// ellipsis to fit width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(ellipsis) + lipgloss.Width(sep)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && used+w+reserve > width && !(last && used+w <= width) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched runes highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/sq/query"
)

// Tokenize converts a raw query string into an ordered token sequence using
// the grammar's lexical patterns. It is a pure function: no state is shared
// between calls. Characters matched by no pattern become Unknown tokens; the
// token linter later turns those into fatal diagnostics instead of silently
// dropping input.
func Tokenize(input string, g *Grammar) []Token {
	var tokens []Token
	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}
		tok, ok := matchAt(input, pos, g)
		if !ok {
			tok = unknownAt(input, pos)
		}
		tokens = append(tokens, tok)
		pos = tok.Span.End
	}
	return mergeAdjacentTerms(tokens)
}

// matchAt tries each pattern in priority order at pos.
func matchAt(input string, pos int, g *Grammar) (Token, bool) {
	rest := input[pos:]
	for _, p := range g.Patterns {
		loc := p.re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		return Token{
			Value: rest[:loc[1]],
			Kind:  p.Kind,
			Span:  query.Span{Start: pos, End: pos + loc[1]},
		}, true
	}
	return Token{}, false
}

// unknownAt consumes a run of non-whitespace, non-parenthesis characters.
func unknownAt(input string, pos int) Token {
	end := pos
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			break
		}
		end += size
	}
	if end == pos {
		end = pos + 1
	}
	return Token{
		Value: input[pos:end],
		Kind:  TokenUnknown,
		Span:  query.Span{Start: pos, End: end},
	}
}

// mergeAdjacentTerms combines runs of bare term tokens into one multi-word
// term, so `wearable device` without quotes still becomes a single term.
func mergeAdjacentTerms(tokens []Token) []Token {
	var merged []Token
	for _, tok := range tokens {
		if tok.Kind == TokenTerm && len(merged) > 0 && merged[len(merged)-1].Kind == TokenTerm {
			prev := &merged[len(merged)-1]
			prev.Value = prev.Value + " " + tok.Value
			prev.Span.End = tok.Span.End
			continue
		}
		merged = append(merged, tok)
	}
	return merged
}

// CoverageGaps returns every non-whitespace segment of input not covered by a
// source-derived token span. A non-empty result is a tokenizer defect
// surfaced as a fatal diagnostic.
func CoverageGaps(input string, tokens []Token) []query.Span {
	covered := make([]bool, len(input))
	for _, tok := range tokens {
		if tok.IsSynthetic() {
			continue
		}
		for i := tok.Span.Start; i < tok.Span.End && i < len(input); i++ {
			covered[i] = true
		}
	}
	var gaps []query.Span
	start := -1
	for i := 0; i <= len(input); i++ {
		uncovered := i < len(input) && !covered[i]
		if uncovered && start < 0 {
			start = i
		}
		if (!uncovered || i == len(input)) && start >= 0 {
			segment := input[start:i]
			if strings.TrimSpace(segment) != "" {
				gaps = append(gaps, trimGap(input, query.Span{Start: start, End: i}))
			}
			start = -1
		}
	}
	return gaps
}

func trimGap(input string, gap query.Span) query.Span {
	for gap.Start < gap.End && isSpaceAt(input, gap.Start) {
		gap.Start++
	}
	for gap.End > gap.Start && isSpaceAt(input, gap.End-1) {
		gap.End--
	}
	return gap
}

func isSpaceAt(input string, i int) bool {
	r, _ := utf8.DecodeRuneInString(input[i:])
	return unicode.IsSpace(r)
}

package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/query"
)

// tokenLinter validates and normalizes a token sequence before tree
// construction. Checks run in a fixed order so that later checks can assume
// the properties established by earlier ones; precedence resolution in
// particular requires a balanced sequence.
type tokenLinter struct {
	input   string
	grammar *Grammar
	tokens  []Token
	msgs    *lint.Collector
	opts    Options
}

// run executes all token-level checks and returns the normalized sequence.
// When a fatal defect is found the structural passes that depend on
// well-formed input are skipped and the tokens are returned as they are.
func (l *tokenLinter) run() []Token {
	l.checkUnknownTokens()
	l.checkAdjacency()
	l.checkBalance()
	if l.msgs.HasFatal() {
		return l.tokens
	}
	l.checkNestingDepth()
	if l.msgs.HasFatal() {
		return l.tokens
	}
	l.normalizeOperators()
	l.resolvePrecedence()
	l.checkTermQuotes()
	l.checkTermCharacters()
	l.checkProximityDistance()
	l.checkFieldPresence()
	return l.tokens
}

func (l *tokenLinter) checkUnknownTokens() {
	for _, tok := range l.tokens {
		if tok.Kind == TokenUnknown {
			l.msgs.Add(lint.CodeTokenizingFailed, []query.Span{tok.Span},
				fmt.Sprintf("Cannot parse %q.", tok.Value))
		}
	}
	for _, gap := range CoverageGaps(l.input, l.tokens) {
		l.msgs.Add(lint.CodeTokenizingFailed, []query.Span{gap},
			fmt.Sprintf("Cannot parse %q.", l.input[gap.Start:gap.End]))
	}
}

// checkAdjacency validates every consecutive token pair against the grammar's
// adjacency table, plus the boundary rules for the first and last token.
func (l *tokenLinter) checkAdjacency() {
	if len(l.tokens) == 0 {
		return
	}

	first := l.tokens[0]
	switch first.Kind {
	case TokenLogicOperator, TokenProximityOperator, TokenRangeOperator, TokenParenClosed:
		kind, _, _, _ := l.grammar.OperatorOf(first.Value)
		if !(kind == query.OpNot && l.grammar.UnaryNot) {
			l.msgs.Add(lint.CodeInvalidTokenSequence, []query.Span{first.Span},
				fmt.Sprintf("A query cannot start with %q.", first.Value))
		}
	}

	last := l.tokens[len(l.tokens)-1]
	switch last.Kind {
	case TokenLogicOperator, TokenProximityOperator, TokenRangeOperator, TokenField, TokenParenOpen:
		l.msgs.Add(lint.CodeInvalidTokenSequence, []query.Span{last.Span},
			fmt.Sprintf("A query cannot end with %q.", last.Value))
	}

	for i := 0; i+1 < len(l.tokens); i++ {
		cur, next := l.tokens[i], l.tokens[i+1]
		pair := []query.Span{{Start: cur.Span.Start, End: next.Span.End}}

		if cur.Kind == TokenParenOpen && next.Kind == TokenParenClosed {
			l.msgs.Add(lint.CodeEmptyParentheses, pair, "")
			continue
		}
		if cur.Kind.IsOperator() && next.Kind.IsOperator() {
			l.msgs.Add(lint.CodeInvalidTokenSequence, pair,
				"Two operators in a row are not allowed.")
			continue
		}
		if !l.grammar.AllowedAfter(cur.Kind, next.Kind) {
			l.msgs.Add(lint.CodeInvalidTokenSequence, pair,
				fmt.Sprintf("%s cannot be followed by %s.",
					describeToken(cur), describeToken(next)))
		}
	}
}

// checkBalance flags every unmatched parenthesis individually: a forward scan
// catches closing parentheses with no opener, a backward scan catches opening
// parentheses with no closer.
func (l *tokenLinter) checkBalance() {
	depth := 0
	for _, tok := range l.tokens {
		switch tok.Kind {
		case TokenParenOpen:
			depth++
		case TokenParenClosed:
			depth--
			if depth < 0 {
				l.msgs.Add(lint.CodeUnbalancedParentheses, []query.Span{tok.Span},
					"Closing parenthesis without a matching opening parenthesis.")
				depth = 0
			}
		}
	}

	depth = 0
	for i := len(l.tokens) - 1; i >= 0; i-- {
		tok := l.tokens[i]
		switch tok.Kind {
		case TokenParenClosed:
			depth++
		case TokenParenOpen:
			depth--
			if depth < 0 {
				l.msgs.Add(lint.CodeUnbalancedParentheses, []query.Span{tok.Span},
					"Opening parenthesis without a matching closing parenthesis.")
				depth = 0
			}
		}
	}
}

func (l *tokenLinter) checkNestingDepth() {
	depth, max := 0, 0
	for _, tok := range l.tokens {
		switch tok.Kind {
		case TokenParenOpen:
			depth++
			if depth > max {
				max = depth
			}
		case TokenParenClosed:
			depth--
		}
	}
	if max > MaxNestingDepth {
		l.msgs.Add(lint.CodeTooDeeplyNested, []query.Span{{Start: 0, End: len(l.input)}},
			fmt.Sprintf("Parentheses are nested %d levels deep; the maximum is %d.",
				max, MaxNestingDepth))
	}
}

// normalizeOperators canonicalizes operator spelling in place. Lowercase or
// mixed-case logic operators are uppercased with a warning; proximity
// operators without an explicit distance get the grammar's default with a
// warning.
func (l *tokenLinter) normalizeOperators() {
	for i := range l.tokens {
		tok := &l.tokens[i]
		switch tok.Kind {
		case TokenLogicOperator:
			canonical := l.grammar.CanonicalOperator(tok.Value)
			if canonical != "" && canonical != tok.Value {
				l.msgs.Add(lint.CodeOperatorCapitalization, []query.Span{tok.Span},
					fmt.Sprintf("Operators should be capitalized: %q.", tok.Value))
				tok.Value = canonical
			}
		case TokenProximityOperator:
			kind, distance, explicit, ok := l.grammar.OperatorOf(tok.Value)
			if !ok {
				l.msgs.Add(lint.CodeInvalidProximityUse, []query.Span{tok.Span},
					fmt.Sprintf("Cannot interpret proximity operator %q.", tok.Value))
				continue
			}
			if !explicit {
				l.msgs.Add(lint.CodeImplicitProximity, []query.Span{tok.Span},
					fmt.Sprintf("%s without an explicit distance defaults to %s/%d.",
						tok.Value, proximityName(kind), l.grammar.DefaultProximity))
				distance = l.grammar.DefaultProximity
			}
			canonical := l.grammar.RenderProximity(kind, distance)
			if canonical != "" {
				tok.Value = canonical
			}
		}
	}
}

func (l *tokenLinter) checkTermQuotes() {
	for _, tok := range l.tokens {
		if tok.Kind != TokenTerm {
			continue
		}
		if strings.ContainsAny(tok.Value, "“”‘’«»") {
			l.msgs.Add(lint.CodeNonStandardQuotes, []query.Span{tok.Span},
				fmt.Sprintf("%q uses typographic quotes; phrases need straight double quotes.",
					tok.Value))
		}
		quotes := strings.Count(tok.Value, `"`)
		if quotes == 0 {
			continue
		}
		balanced := quotes == 2 &&
			strings.HasPrefix(tok.Value, `"`) && strings.HasSuffix(tok.Value, `"`)
		if !balanced {
			l.msgs.Add(lint.CodeUnbalancedQuotes, []query.Span{tok.Span},
				fmt.Sprintf("Unbalanced quotes in %q.", tok.Value))
		}
	}
}

func (l *tokenLinter) checkTermCharacters() {
	if l.grammar.InvalidTermChars == "" {
		return
	}
	for _, tok := range l.tokens {
		if tok.Kind != TokenTerm {
			continue
		}
		for _, r := range tok.Value {
			if strings.ContainsRune(l.grammar.InvalidTermChars, r) {
				l.msgs.Add(lint.CodeInvalidCharacter, []query.Span{tok.Span},
					fmt.Sprintf("Character %q is not allowed in search terms.", r))
				break
			}
		}
	}
}

// checkProximityDistance flags distances above the grammar's maximum. The
// token value is clamped so that non-strict parsing can proceed with the
// largest supported distance.
func (l *tokenLinter) checkProximityDistance() {
	if l.grammar.MaxProximity <= 0 {
		return
	}
	for i := range l.tokens {
		tok := &l.tokens[i]
		if tok.Kind != TokenProximityOperator {
			continue
		}
		kind, distance, _, ok := l.grammar.OperatorOf(tok.Value)
		if !ok {
			continue
		}
		if distance > l.grammar.MaxProximity {
			l.msgs.Add(lint.CodeProximityDistanceTooBig, []query.Span{tok.Span},
				fmt.Sprintf("Proximity distance %d exceeds the maximum of %d.",
					distance, l.grammar.MaxProximity))
			tok.Value = l.grammar.RenderProximity(kind, l.grammar.MaxProximity)
		}
	}
}

// checkFieldPresence applies to grammars that expect every query clause to
// carry a field. A query that neither starts with a field nor has one supplied
// externally gets a warning; a supplied field that contradicts the one in the
// query string is an error. Parentheses inserted by precedence resolution are
// not part of the written query and are skipped.
func (l *tokenLinter) checkFieldPresence() {
	if !l.grammar.RequireField {
		return
	}
	var first Token
	found := false
	for _, tok := range l.tokens {
		if tok.IsSynthetic() {
			continue
		}
		first = tok
		found = true
		break
	}
	if !found {
		return
	}
	if first.Kind == TokenField {
		if l.opts.FieldGeneral == "" {
			return
		}
		want := l.grammar.CanonicalField(l.opts.FieldGeneral)
		got := l.grammar.CanonicalField(first.Value)
		if want != "" && got != "" && want != got {
			l.msgs.Add(lint.CodeFieldContradiction, []query.Span{first.Span},
				fmt.Sprintf("The query specifies %q but %q was given externally.",
					first.Value, l.opts.FieldGeneral))
		}
		return
	}
	if l.opts.FieldGeneral == "" {
		l.msgs.Add(lint.CodeFieldMissing, []query.Span{query.SyntheticSpan},
			"The query does not specify a search field; the platform default applies.")
	}
}

func describeToken(tok Token) string {
	switch tok.Kind {
	case TokenField:
		return fmt.Sprintf("the field %q", tok.Value)
	case TokenLogicOperator, TokenProximityOperator, TokenRangeOperator:
		return fmt.Sprintf("the operator %q", tok.Value)
	case TokenParenOpen:
		return `"("`
	case TokenParenClosed:
		return `")"`
	default:
		return fmt.Sprintf("the term %q", tok.Value)
	}
}

func proximityName(kind query.OperatorKind) string {
	if kind == query.OpWithin {
		return "WITHIN"
	}
	return "NEAR"
}

package parser

import (
	"fmt"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/query"
)

// resolvePrecedence rewrites the token sequence so that every implicit
// precedence relationship is explicit: wherever operators of different
// precedence meet at the same nesting level, synthetic parentheses (sentinel
// span) are inserted around the tighter-binding run. Explicit parentheses and
// operand order are never changed. The pass is idempotent: running it on its
// own output inserts nothing and warns about nothing.
func (l *tokenLinter) resolvePrecedence() {
	_, output := l.resolveLevel(0, nil)
	l.tokens = flattenRedundantSynthetics(output)
}

// resolveLevel processes tokens at one nesting depth, recursing into every
// explicit parenthesis group. It maintains the current precedence (unset
// initially), and a counter of synthetic parentheses opened at this level.
func (l *tokenLinter) resolveLevel(index int, output []Token) (int, []Token) {
	previous := -1
	artPar := 0
	startIndex := len(output)

	for index < len(l.tokens) {
		tok := l.tokens[index]
		switch {
		case tok.Kind == TokenParenOpen:
			output = append(output, tok)
			index++
			index, output = l.resolveLevel(index, output)

		case tok.Kind == TokenParenClosed:
			output = append(output, tok)
			index++
			for artPar > 0 {
				output = append(output, syntheticParen(false))
				artPar--
			}
			for artPar < 0 {
				output = insertToken(output, startIndex, syntheticParen(true))
				artPar++
			}
			return index, output

		case tok.Kind.IsOperator():
			value := l.grammar.PrecedenceOf(tok.Value)
			switch {
			case previous == -1 || value == previous:
				// Equal precedence accumulates into one flat group.
				output = append(output, tok)
			case value > previous:
				// Tighter binding: wrap the most recent operand run.
				output, artPar, previous = wrapTighterRun(output, previous, value, artPar)
				output = append(output, tok)
				l.warnImplicitPrecedence(tok)
			default:
				// Looser binding: close every synthetic level opened since
				// precedence last dropped this far.
				for previous > value {
					output = append(output, syntheticParen(false))
					previous--
					artPar--
					l.warnImplicitPrecedence(tok)
				}
				output = append(output, tok)
			}
			previous = value
			index++

		default:
			output = append(output, tok)
			index++
		}
	}

	for artPar > 0 {
		output = append(output, syntheticParen(false))
		artPar--
	}
	for artPar < 0 {
		output = insertToken(output, startIndex, syntheticParen(true))
		artPar++
	}
	return index, output
}

// wrapTighterRun scans backward through the already emitted output at this
// level, without descending into closed parenthesis groups, to find the
// boundary of the operand run that the tighter-binding operator captures. A
// synthetic open parenthesis is inserted there, one per precedence level
// climbed.
func wrapTighterRun(output []Token, previous, value, artPar int) ([]Token, int, int) {
	var run []Token
	depth := 0
	for len(output) > 0 {
		tok := output[len(output)-1]
		output = output[:len(output)-1]
		if tok.Kind == TokenParenClosed {
			depth++
		} else if tok.Kind == TokenParenOpen {
			depth--
		}
		run = append([]Token{tok}, run...)
		if tok.Kind.IsOperator() && depth == 0 {
			for previous < value {
				run = insertToken(run, 1, syntheticParen(true))
				previous++
				artPar++
			}
			break
		}
	}
	return append(output, run...), artPar, previous
}

func (l *tokenLinter) warnImplicitPrecedence(tok Token) {
	l.msgs.Add(lint.CodeImplicitPrecedence, []query.Span{tok.Span}, fmt.Sprintf(
		"The query mixes operators of different precedence without parentheses; "+
			"synthetic parentheses make the grouping around %q explicit.", tok.Value))
}

// flattenRedundantSynthetics repeatedly collapses directly nested pairs of
// synthetic parentheses: when two synthetic opens are adjacent and their
// matching synthetic closes are adjacent at the same depth, the outer pair is
// removed. Repeated application of the tighter-binding branch produces such
// double nesting.
func flattenRedundantSynthetics(tokens []Token) []Token {
	for {
		changed := false
		var output []Token
		i := 0
		for i < len(tokens) {
			if i+1 < len(tokens) &&
				isSyntheticOpen(tokens[i]) && isSyntheticOpen(tokens[i+1]) {
				outer := matchingClose(tokens, i)
				inner := matchingClose(tokens, i+1)
				if outer == inner+1 && isSyntheticClose(tokens[outer]) {
					output = append(output, tokens[i+1:outer]...)
					i = outer + 1
					changed = true
					continue
				}
			}
			output = append(output, tokens[i])
			i++
		}
		if !changed {
			return output
		}
		tokens = output
	}
}

// matchingClose returns the index of the closing parenthesis matching the
// opening one at index open, or -2 when the sequence is unbalanced. The
// balance check has already run by the time this is called.
func matchingClose(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case TokenParenOpen:
			depth++
		case TokenParenClosed:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -2
}

func isSyntheticOpen(t Token) bool {
	return t.Kind == TokenParenOpen && t.IsSynthetic()
}

func isSyntheticClose(t Token) bool {
	return t.Kind == TokenParenClosed && t.IsSynthetic()
}

func insertToken(tokens []Token, index int, tok Token) []Token {
	tokens = append(tokens, Token{})
	copy(tokens[index+1:], tokens[index:])
	tokens[index] = tok
	return tokens
}

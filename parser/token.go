package parser

import "github.com/dhamidi/sq/query"

// TokenKind classifies one lexical unit of a query string.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenField
	TokenTerm
	TokenLogicOperator
	TokenProximityOperator
	TokenParenOpen
	TokenParenClosed
	TokenRangeOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:           "Unknown",
	TokenField:             "Field",
	TokenTerm:              "Term",
	TokenLogicOperator:     "LogicOperator",
	TokenProximityOperator: "ProximityOperator",
	TokenParenOpen:         "ParenOpen",
	TokenParenClosed:       "ParenClosed",
	TokenRangeOperator:     "RangeOperator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsOperator reports whether the kind joins operands.
func (k TokenKind) IsOperator() bool {
	return k == TokenLogicOperator || k == TokenProximityOperator || k == TokenRangeOperator
}

// Token is one lexical unit with its source span. Tokens are produced once by
// Tokenize and then normalized in place by the token linter before the tree
// builder consumes them.
type Token struct {
	Value string
	Kind  TokenKind
	Span  query.Span
}

// IsSynthetic reports whether the token was inserted by the precedence pass
// rather than read from the input.
func (t Token) IsSynthetic() bool {
	return t.Span.IsSynthetic()
}

func syntheticParen(open bool) Token {
	if open {
		return Token{Value: "(", Kind: TokenParenOpen, Span: query.SyntheticSpan}
	}
	return Token{Value: ")", Kind: TokenParenClosed, Span: query.SyntheticSpan}
}

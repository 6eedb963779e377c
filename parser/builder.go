package parser

import (
	"fmt"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/query"
)

// builder turns a linted, precedence-resolved token sequence into a query
// tree. By the time it runs, every same-depth operator run is homogeneous, so
// the builder only ever splits on one operator per window; anything else is a
// defect in the earlier passes and reported as an error rather than guessed
// around.
type builder struct {
	grammar *Grammar
	msgs    *lint.Collector
}

func buildTree(tokens []Token, g *Grammar, msgs *lint.Collector) (*query.Node, error) {
	b := &builder{grammar: g, msgs: msgs}
	return b.parse(tokens)
}

func (b *builder) parse(tokens []Token) (*query.Node, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("parse: empty token window")
	}

	// Leading NOT negates everything that follows at this level.
	if kind, _, _, ok := b.operatorKind(tokens[0]); ok && kind == query.OpNot {
		child, err := b.parse(tokens[1:])
		if err != nil {
			return nil, err
		}
		return query.NewOperator(query.OpNot, []*query.Node{child}, tokens[0].Span), nil
	}

	ops := b.topLevelOperators(tokens)
	if len(ops) > 0 {
		return b.parseCompound(tokens, ops)
	}

	// Field-scoped group: FIELD ( ... )
	if tokens[0].Kind == TokenField && len(tokens) > 2 &&
		tokens[1].Kind == TokenParenOpen &&
		matchingClose(tokens, 1) == len(tokens)-1 {
		node, err := b.parse(tokens[2 : len(tokens)-1])
		if err != nil {
			return nil, err
		}
		if node.Field == nil {
			node.AttachField(fieldToken(tokens[0]))
		}
		return node, nil
	}

	// Plain group: ( ... )
	if tokens[0].Kind == TokenParenOpen && matchingClose(tokens, 0) == len(tokens)-1 {
		return b.parse(tokens[1 : len(tokens)-1])
	}

	return b.parseLeaf(tokens)
}

// parseLeaf handles the term shapes: a bare term, a prefix field before a
// term, or a suffix field after one.
func (b *builder) parseLeaf(tokens []Token) (*query.Node, error) {
	switch {
	case len(tokens) == 1 && tokens[0].Kind == TokenTerm:
		return query.NewTerm(tokens[0].Value, nil, tokens[0].Span), nil
	case len(tokens) == 2 && tokens[0].Kind == TokenField && tokens[1].Kind == TokenTerm:
		return query.NewTerm(tokens[1].Value, fieldToken(tokens[0]), tokens[1].Span), nil
	case len(tokens) == 2 && tokens[0].Kind == TokenTerm && tokens[1].Kind == TokenField:
		return query.NewTerm(tokens[0].Value, fieldToken(tokens[1]), tokens[0].Span), nil
	}
	return nil, fmt.Errorf("parse: unexpected token window %s", describeWindow(tokens))
}

// parseCompound splits the window on its top-level operators and parses each
// segment. The precedence pass guarantees homogeneity; mixed operators here
// are a pipeline defect.
func (b *builder) parseCompound(tokens []Token, ops []int) (*query.Node, error) {
	kind, distance, _, _ := b.operatorKind(tokens[ops[0]])
	for _, i := range ops[1:] {
		k, d, _, _ := b.operatorKind(tokens[i])
		if k != kind || (kind.IsProximity() && d != distance) {
			return nil, fmt.Errorf("parse: mixed operators %q and %q at one level",
				tokens[ops[0]].Value, tokens[i].Value)
		}
	}

	var children []*query.Node
	start := 0
	for _, i := range append(ops, len(tokens)) {
		segment := tokens[start:i]
		if len(segment) == 0 {
			return nil, fmt.Errorf("parse: operator %q with an empty operand",
				tokens[ops[0]].Value)
		}
		child, err := b.parse(segment)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		if i < len(tokens) {
			start = i + 1
		}
	}

	span := tokens[ops[0]].Span
	switch kind {
	case query.OpNear, query.OpWithin, query.OpRange:
		if len(children) != 2 {
			b.msgs.Add(lint.CodeInvalidOperatorArity,
				[]query.Span{span},
				fmt.Sprintf("%s connects exactly two operands, got %d.",
					tokens[ops[0]].Value, len(children)))
			return nil, fmt.Errorf("parse: %s with %d operands",
				tokens[ops[0]].Value, len(children))
		}
		node := query.NewOperator(kind, children, span)
		node.Distance = distance
		return node, nil
	case query.OpNot:
		// A NOT B NOT C folds left: (A NOT B) NOT C.
		node := children[0]
		for _, right := range children[1:] {
			node = query.NewOperator(query.OpNot, []*query.Node{node, right}, span)
		}
		return node, nil
	default:
		return query.NewOperator(kind, children, span), nil
	}
}

// topLevelOperators returns the indices of operator tokens at nesting depth
// zero of the window.
func (b *builder) topLevelOperators(tokens []Token) []int {
	var ops []int
	depth := 0
	for i, tok := range tokens {
		switch {
		case tok.Kind == TokenParenOpen:
			depth++
		case tok.Kind == TokenParenClosed:
			depth--
		case depth == 0 && tok.Kind.IsOperator():
			ops = append(ops, i)
		}
	}
	return ops
}

func (b *builder) operatorKind(tok Token) (query.OperatorKind, int, bool, bool) {
	if !tok.Kind.IsOperator() {
		return query.OpNone, 0, false, false
	}
	kind, distance, explicit, ok := b.grammar.OperatorOf(tok.Value)
	if !ok {
		return query.OpNone, 0, false, false
	}
	return kind, distance, explicit, true
}

// fieldToken converts a field token into a SearchField carrying its source
// position.
func fieldToken(tok Token) *query.SearchField {
	f := query.NewSearchField(tok.Value)
	f.Span = tok.Span
	return f
}

func describeWindow(tokens []Token) string {
	if len(tokens) == 0 {
		return "(empty)"
	}
	s := ""
	for i, tok := range tokens {
		if i > 0 {
			s += " "
		}
		s += tok.Value
	}
	if len(s) > 60 {
		s = s[:60] + "…"
	}
	return s
}

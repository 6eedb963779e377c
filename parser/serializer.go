package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/sq/query"
)

// Serialize renders a query tree in the grammar's syntax. Parentheses are
// derived from the tree structure rather than replayed from the input, so a
// parse-serialize round trip yields a canonical spelling with the same
// semantics. The tree is not modified; field hoisting happens on a copy.
func Serialize(n *query.Node, g *Grammar) (string, error) {
	if n == nil {
		return "", fmt.Errorf("serialize: nil query")
	}
	c := n.Clone()
	if !g.NoOperatorFields {
		hoistCommonFields(c)
	}
	return render(c, g, false)
}

func render(n *query.Node, g *Grammar, nested bool) (string, error) {
	if n.IsTerm() {
		return renderField(n.Value, n.Field, g)
	}
	if err := n.Validate(g.UnaryNot); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}

	if n.Operator == query.OpNot && len(n.Children) == 1 {
		child, err := render(n.Children[0], g, true)
		if err != nil {
			return "", err
		}
		return "NOT " + child, nil
	}

	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		s, err := render(child, g, true)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	if n.Operator == query.OpRange {
		// Ranges bind tighter than any operator and never need parentheses,
		// e.g. "1990:2000[dp]".
		return renderField(parts[0]+":"+parts[1], n.Field, g)
	}
	joined := strings.Join(parts, " "+operatorSpelling(n, g)+" ")

	// A group needs parentheses when it appears inside another group or
	// when a field scopes it as a whole.
	if n.Field != nil {
		return renderField("("+joined+")", n.Field, g)
	}
	if nested && len(n.Children) > 1 {
		return "(" + joined + ")", nil
	}
	return joined, nil
}

// renderField wraps a rendered term or group in its field, in the grammar's
// prefix or suffix spelling. Unknown field codes fail closed rather than
// producing a query the target database would misread.
func renderField(body string, field *query.SearchField, g *Grammar) (string, error) {
	if field == nil {
		return body, nil
	}
	spec, ok := g.LookupField(field.Code)
	if !ok {
		return "", fmt.Errorf("serialize: unknown field code %q", field.Code)
	}
	if g.FieldSuffix {
		return body + spec.Code, nil
	}
	if strings.HasSuffix(spec.Code, "=") {
		return spec.Code + body, nil
	}
	return spec.Code + " " + body, nil
}

func operatorSpelling(n *query.Node, g *Grammar) string {
	if n.Operator.IsProximity() {
		return g.RenderProximity(n.Operator, n.Distance)
	}
	return n.Operator.String()
}

// hoistCommonFields moves a field shared by every child of a group onto the
// group itself, so "TI=a AND TI=b" renders as "TI=(a AND b)".
func hoistCommonFields(n *query.Node) {
	if n.IsTerm() {
		return
	}
	for _, child := range n.Children {
		hoistCommonFields(child)
	}
	if n.Field != nil || len(n.Children) == 0 {
		return
	}
	first := n.Children[0].Field
	if first == nil {
		return
	}
	for _, child := range n.Children[1:] {
		if !first.Equal(child.Field) {
			return
		}
	}
	n.AttachField(first)
	for _, child := range n.Children {
		child.Field = nil
	}
}

// Package translate converts query trees between platform grammars by
// mapping each search field through its platform-independent meaning.
package translate

import (
	"fmt"

	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/query"
)

// Translate returns a copy of root with every field rewritten from the
// source grammar's codes to the target's. The tree structure is unchanged;
// only field codes and the platform tag differ. A field whose meaning the
// target cannot express at all is an error.
func Translate(root *query.Node, from, to *parser.Grammar) (*query.Node, error) {
	if root == nil {
		return nil, fmt.Errorf("translate: nil query")
	}
	c := root.Clone()
	if to.NoOperatorFields {
		// The target attaches fields to terms only, so group fields are
		// pushed down before mapping.
		pushDown(c, nil)
	}

	var firstErr error
	c.Walk(func(n *query.Node) bool {
		if _, ok := to.Precedence[n.Operator]; !ok && !n.IsTerm() {
			firstErr = fmt.Errorf("translate: platform %q does not support %s",
				to.Name, n.Operator)
			return false
		}
		if n.Operator.IsProximity() && n.Distance > to.MaxProximity {
			// Clamp to the widest distance the target accepts.
			n.Distance = to.MaxProximity
		}
		if n.Field == nil {
			return true
		}
		code, err := mapField(n.Field.Code, from, to)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return false
		}
		n.Field.Code = code
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	if err := c.SetPlatform(to.Name, to.UnaryNot); err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	return c, nil
}

// mapField picks the target field covering the source field's meaning. An
// exact generic match wins; otherwise the narrowest target field whose
// coverage includes everything the source field covers.
func mapField(code string, from, to *parser.Grammar) (string, error) {
	src, ok := from.LookupField(code)
	if !ok {
		return "", fmt.Errorf("translate: %q is not a field of platform %q", code, from.Name)
	}

	var best *parser.FieldSpec
	for i := range to.Fields {
		dst := &to.Fields[i]
		if !coversAll(dst, src.Generic) {
			continue
		}
		if best == nil || len(dst.Generic) < len(best.Generic) {
			best = dst
		}
	}
	if best == nil {
		return "", fmt.Errorf("translate: platform %q has no field covering %q",
			to.Name, src.Code)
	}
	return best.Code, nil
}

func coversAll(spec *parser.FieldSpec, generics []query.GenericField) bool {
	for _, g := range generics {
		if !spec.HasGeneric(g) {
			return false
		}
	}
	return true
}

func pushDown(n *query.Node, inherited *query.SearchField) {
	if n.Field != nil {
		inherited = n.Field
		if !n.IsTerm() {
			n.Field = nil
		}
	}
	if n.IsTerm() {
		if n.Field == nil && inherited != nil {
			n.AttachField(inherited)
		}
		return
	}
	for _, child := range n.Children {
		pushDown(child, inherited)
	}
}

package query

import (
	"fmt"
	"strings"
)

// OperatorKind identifies the operator of a non-leaf node. OpNone marks a
// term leaf.
type OperatorKind int

const (
	OpNone OperatorKind = iota
	OpAnd
	OpOr
	OpNot
	OpNear
	OpWithin
	OpRange
)

var operatorNames = map[OperatorKind]string{
	OpNone:   "TERM",
	OpAnd:    "AND",
	OpOr:     "OR",
	OpNot:    "NOT",
	OpNear:   "NEAR",
	OpWithin: "WITHIN",
	OpRange:  "RANGE",
}

func (k OperatorKind) String() string {
	if name, ok := operatorNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsProximity reports whether the operator carries a distance between exactly
// two operands.
func (k OperatorKind) IsProximity() bool {
	return k == OpNear || k == OpWithin
}

// PlatformDeactivated disables invariant checking while a tree is under
// construction. Parsers build nodes with this tag and call SetPlatform before
// the tree escapes to a caller.
const PlatformDeactivated = "deactivated"

// Node is one vertex of the query tree: either a term leaf (Operator ==
// OpNone) or an operator with ordered children. Every non-root node has
// exactly one parent; subtrees are exclusively owned.
type Node struct {
	Operator OperatorKind
	// Value is the term text for leaves. For operators it is empty; the
	// canonical keyword comes from Operator.String().
	Value    string
	Field    *SearchField
	Distance int
	Children []*Node
	Span     Span
	Platform string
}

// NewTerm returns a term leaf.
func NewTerm(text string, field *SearchField, span Span) *Node {
	return &Node{
		Operator: OpNone,
		Value:    text,
		Field:    field.Copy(),
		Span:     span,
		Platform: PlatformDeactivated,
	}
}

// NewOperator returns an operator node owning the given children.
func NewOperator(kind OperatorKind, children []*Node, span Span) *Node {
	return &Node{
		Operator: kind,
		Children: children,
		Span:     span,
		Platform: PlatformDeactivated,
	}
}

func (n *Node) IsTerm() bool {
	return n.Operator == OpNone
}

// AddChild appends child as the last operand.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// AttachField sets a copy of field on the node, preserving copy-on-attach
// semantics.
func (n *Node) AttachField(field *SearchField) {
	n.Field = field.Copy()
}

// Validate checks the per-operator arity invariants. A unary NOT is accepted
// only when allowUnaryNot is set (list-reconstructed grammars); all other
// grammars treat NOT as binary. Nodes tagged PlatformDeactivated are exempt:
// they are still under construction.
func (n *Node) Validate(allowUnaryNot bool) error {
	if n.Platform == PlatformDeactivated {
		return nil
	}
	switch n.Operator {
	case OpNone:
		if len(n.Children) > 0 {
			return fmt.Errorf("term %q must not have children", n.Value)
		}
	case OpAnd, OpOr:
		if len(n.Children) < 2 {
			return fmt.Errorf("%s requires at least 2 children, got %d", n.Operator, len(n.Children))
		}
	case OpNot:
		switch len(n.Children) {
		case 2:
		case 1:
			if !allowUnaryNot {
				return fmt.Errorf("unary NOT is not supported on platform %q", n.Platform)
			}
		default:
			return fmt.Errorf("NOT requires 1 or 2 children, got %d", len(n.Children))
		}
	case OpNear, OpWithin:
		if len(n.Children) != 2 {
			return fmt.Errorf("%s requires exactly 2 children, got %d", n.Operator, len(n.Children))
		}
		if n.Distance < 0 {
			return fmt.Errorf("%s distance must be non-negative, got %d", n.Operator, n.Distance)
		}
	case OpRange:
		if len(n.Children) != 2 {
			return fmt.Errorf("RANGE requires exactly 2 children, got %d", len(n.Children))
		}
	}
	for _, child := range n.Children {
		if err := child.Validate(allowUnaryNot); err != nil {
			return err
		}
	}
	return nil
}

// SetPlatform tags the whole tree with platform and re-tightens the arity
// invariants that were relaxed during construction.
func (n *Node) SetPlatform(platform string, allowUnaryNot bool) error {
	n.setPlatformUnchecked(platform)
	return n.Validate(allowUnaryNot)
}

func (n *Node) setPlatformUnchecked(platform string) {
	n.Platform = platform
	for _, child := range n.Children {
		child.setPlatformUnchecked(platform)
	}
}

// Clone returns a deep copy. Serializers restructure clones, never the
// caller's tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Operator: n.Operator,
		Value:    n.Value,
		Field:    n.Field.Copy(),
		Distance: n.Distance,
		Span:     n.Span,
		Platform: n.Platform,
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Walk calls fn for n and every descendant in depth-first order. Returning
// false stops descent below the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Terms returns all term leaves in document order.
func (n *Node) Terms() []*Node {
	var terms []*Node
	n.Walk(func(node *Node) bool {
		if node.IsTerm() {
			terms = append(terms, node)
		}
		return true
	})
	return terms
}

// Flatten returns a copy with same-operator AND/OR nesting collapsed into the
// parent. Proximity and NOT nodes are never merged.
func (n *Node) Flatten() *Node {
	c := n.Clone()
	c.flattenInPlace()
	return c
}

func (n *Node) flattenInPlace() {
	for _, child := range n.Children {
		child.flattenInPlace()
	}
	if n.Operator != OpAnd && n.Operator != OpOr {
		return
	}
	var merged []*Node
	for _, child := range n.Children {
		if child.Operator == n.Operator && child.Field == nil {
			merged = append(merged, child.Children...)
		} else {
			merged = append(merged, child)
		}
	}
	n.Children = merged
}

// StringStructured renders the tree in an indented multi-line form used by
// the CLI and by linter advice.
func (n *Node) StringStructured() string {
	var b strings.Builder
	n.writeStructured(&b, 0)
	return b.String()
}

func (n *Node) writeStructured(b *strings.Builder, level int) {
	indent := strings.Repeat("   ", level)
	b.WriteString(indent)
	if n.IsTerm() {
		b.WriteString(n.Value)
		if n.Field != nil {
			fmt.Fprintf(b, " [%s]", n.Field.Code)
		}
		return
	}
	b.WriteString(n.Operator.String())
	if n.Operator.IsProximity() {
		fmt.Fprintf(b, "/%d", n.Distance)
	}
	if n.Field != nil {
		fmt.Fprintf(b, " [%s]", n.Field.Code)
	}
	b.WriteString("[\n")
	for _, child := range n.Children {
		child.writeStructured(b, level+1)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("]")
}

// StringInline renders the tree in a compact single-line prefix form, useful
// in error messages and tests.
func (n *Node) StringInline() string {
	if n.IsTerm() {
		return n.Value
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, child.StringInline())
	}
	op := n.Operator.String()
	if n.Operator.IsProximity() {
		op = fmt.Sprintf("%s/%d", op, n.Distance)
	}
	return fmt.Sprintf("%s[%s]", op, strings.Join(parts, ", "))
}

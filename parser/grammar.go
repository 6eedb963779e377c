package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dhamidi/sq/query"
)

// Pattern is one lexical rule of a grammar. Patterns are tried in order at
// each input position; the first match wins.
type Pattern struct {
	Kind TokenKind
	re   *regexp.Regexp
}

// NewPattern compiles expr anchored at the current scan position.
func NewPattern(kind TokenKind, expr string) Pattern {
	return Pattern{Kind: kind, re: regexp.MustCompile(`^(?:` + expr + `)`)}
}

// FieldSpec describes one search field of a platform: its canonical code as
// written in queries, accepted spelling variants, the generic fields it maps
// to, and whether it is an exact-match (controlled vocabulary) field.
type FieldSpec struct {
	Code    string
	Aliases []string
	Generic []query.GenericField
	Exact   bool
}

// HasGeneric reports whether the field covers the given generic field.
func (f *FieldSpec) HasGeneric(g query.GenericField) bool {
	for _, have := range f.Generic {
		if have == g {
			return true
		}
	}
	return false
}

// Grammar is the platform-grammar capability object: everything that
// distinguishes one database's query syntax from another. Grammars are
// constructed once at package init and never mutated afterwards; the pipeline
// treats them as read-only.
type Grammar struct {
	// Name is the canonical platform identifier, e.g. "wos".
	Name string

	// Patterns are the ordered lexical rules; earlier entries win.
	Patterns []Pattern

	// Precedence assigns each operator a level; higher binds tighter.
	Precedence map[query.OperatorKind]int

	// Adjacency maps each token kind to the kinds allowed to follow it.
	Adjacency map[TokenKind][]TokenKind

	// Fields lists the platform's search fields.
	Fields []FieldSpec

	// FallbackField is substituted for unsupported fields in non-strict
	// mode. Empty means no substitution is possible.
	FallbackField string

	// FieldSuffix selects rendering as "term[code]" instead of "CODE term".
	FieldSuffix bool

	// MaxProximity is the largest accepted NEAR/WITHIN distance; zero means
	// the platform has no proximity operators.
	MaxProximity int

	// DefaultProximity is the distance assumed when a proximity operator is
	// written without one (e.g. bare NEAR).
	DefaultProximity int

	// UnaryNot permits single-child NOT nodes.
	UnaryNot bool

	// InvalidTermChars are characters flagged inside term tokens.
	InvalidTermChars string

	// ListReference matches line references in list-format queries, e.g.
	// "#3" or "S3". Nil disables list parsing for the platform.
	ListReference *regexp.Regexp

	// RequireField enables the warning for queries without any field.
	RequireField bool

	// ShortProximity renders proximity operators as "N5"/"W5" instead of
	// "NEAR/5"/"WITHIN/5".
	ShortProximity bool

	// NoOperatorFields warns when an operator subtree carries a field, for
	// platforms that only attach fields to individual terms.
	NoOperatorFields bool

	// CheckYearFormat enables format and span validation of publication
	// year terms. YearSpanMax is the widest accepted YYYY-YYYY range.
	CheckYearFormat bool
	YearSpanMax     int

	// CheckISBN and CheckDOI enable format validation of identifier terms.
	CheckISBN bool
	CheckDOI  bool

	// CheckWildcards enables the platform's wildcard usage rules.
	CheckWildcards bool

	fieldIndex map[string]*FieldSpec
}

// Finish builds the lookup index; called by the platform package after the
// grammar literal is assembled.
func (g *Grammar) Finish() *Grammar {
	g.fieldIndex = make(map[string]*FieldSpec)
	for i := range g.Fields {
		spec := &g.Fields[i]
		g.fieldIndex[strings.ToLower(spec.Code)] = spec
		for _, alias := range spec.Aliases {
			g.fieldIndex[strings.ToLower(alias)] = spec
		}
	}
	return g
}

// LookupField resolves a field code as written in a query to its spec.
func (g *Grammar) LookupField(code string) (*FieldSpec, bool) {
	spec, ok := g.fieldIndex[strings.ToLower(strings.TrimSpace(code))]
	return spec, ok
}

// CanonicalField rewrites a field code to its canonical spelling, if known.
func (g *Grammar) CanonicalField(code string) string {
	if spec, ok := g.LookupField(code); ok {
		return spec.Code
	}
	return code
}

var proximityRe = regexp.MustCompile(`^(NEAR|WITHIN|N|W)(?:/?(\d{1,2}))?$`)

// OperatorOf classifies a normalized operator token value. For proximity
// spellings it also extracts the distance; explicit reports whether the
// distance was written out.
func (g *Grammar) OperatorOf(value string) (kind query.OperatorKind, distance int, explicit bool, ok bool) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	switch upper {
	case "AND":
		return query.OpAnd, 0, false, true
	case "OR":
		return query.OpOr, 0, false, true
	case "NOT":
		return query.OpNot, 0, false, true
	case "TO", ":":
		return query.OpRange, 0, false, true
	}
	m := proximityRe.FindStringSubmatch(upper)
	if m == nil {
		return query.OpNone, 0, false, false
	}
	switch m[1] {
	case "NEAR", "N":
		kind = query.OpNear
	case "WITHIN", "W":
		kind = query.OpWithin
	}
	if m[2] == "" {
		return kind, g.DefaultProximity, false, true
	}
	d, err := strconv.Atoi(m[2])
	if err != nil {
		return query.OpNone, 0, false, false
	}
	return kind, d, true, true
}

// CanonicalOperator renders an operator token in the grammar's canonical
// spelling: upper case keywords, proximity as KEYWORD/distance.
func (g *Grammar) CanonicalOperator(value string) string {
	kind, distance, _, ok := g.OperatorOf(value)
	if !ok {
		return strings.ToUpper(value)
	}
	if kind.IsProximity() {
		return g.RenderProximity(kind, distance)
	}
	return kind.String()
}

// RenderProximity formats a proximity operator with its distance in the
// grammar's spelling.
func (g *Grammar) RenderProximity(kind query.OperatorKind, distance int) string {
	if !kind.IsProximity() {
		return ""
	}
	if g.ShortProximity {
		return kind.String()[:1] + strconv.Itoa(distance)
	}
	return kind.String() + "/" + strconv.Itoa(distance)
}

// PrecedenceOf returns the precedence level for an operator token value, or
// -1 for non-operators.
func (g *Grammar) PrecedenceOf(value string) int {
	kind, _, _, ok := g.OperatorOf(value)
	if !ok {
		return -1
	}
	if level, have := g.Precedence[kind]; have {
		return level
	}
	return -1
}

// AllowedAfter reports whether next may directly follow kind.
func (g *Grammar) AllowedAfter(kind, next TokenKind) bool {
	for _, allowed := range g.Adjacency[kind] {
		if allowed == next {
			return true
		}
	}
	return false
}

package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/query"
)

// treeLinter runs the semantic checks that need the finished tree: field
// support, redundancy between sibling terms, nesting that changes nothing,
// and the platform's content rules for years, identifiers and wildcards.
// Checks never restructure the tree; they only record diagnostics and, in
// non-strict mode, rewrite leaf metadata.
type treeLinter struct {
	grammar *Grammar
	msgs    *lint.Collector
	opts    Options
}

func lintTree(root *query.Node, g *Grammar, opts Options, msgs *lint.Collector) {
	tl := &treeLinter{grammar: g, msgs: msgs, opts: opts}
	tl.checkFields(root)
	tl.checkOperatorFields(root)
	tl.checkUnnecessaryNesting(root)

	// The remaining checks reason about the field each term is actually
	// searched under and about maximal same-operator groups, so they run on
	// a copy with group fields pushed down to the leaves and void nesting
	// collapsed.
	scoped := root.Clone()
	pushFieldsToTerms(scoped, nil)
	scoped = scoped.Flatten()
	tl.checkRedundantTerms(scoped)
	tl.checkFilterPlacement(scoped, 0)
	tl.checkTermContent(scoped)
}

// checkFields canonicalizes known field spellings in place and reports
// unsupported ones. In non-strict mode an unsupported field is replaced by
// the grammar's fallback so parsing can proceed.
func (t *treeLinter) checkFields(root *query.Node) {
	root.Walk(func(n *query.Node) bool {
		if n.Field == nil {
			return true
		}
		spec, ok := t.grammar.LookupField(n.Field.Code)
		if ok {
			n.Field.Code = spec.Code
			return true
		}
		t.msgs.Add(lint.CodeFieldUnsupported, []query.Span{n.Field.Span},
			fmt.Sprintf("Field %q is not supported.", n.Field.Code))
		if t.opts.Mode == NonStrict && t.grammar.FallbackField != "" {
			n.Field.Code = t.grammar.FallbackField
		}
		return true
	})
}

func (t *treeLinter) checkOperatorFields(root *query.Node) {
	if !t.grammar.NoOperatorFields {
		return
	}
	root.Walk(func(n *query.Node) bool {
		if !n.IsTerm() && n.Field != nil {
			t.msgs.Add(lint.CodeOperatorWithField, []query.Span{n.Field.Span},
				fmt.Sprintf("Field %q applies to a whole group; attach fields to individual terms.",
					n.Field.Code))
		}
		return true
	})
}

// checkUnnecessaryNesting flags a child group whose operator matches its
// parent's, since removing the parentheses leaves the meaning unchanged.
// Groups that exist to scope a field are intentional and skipped.
func (t *treeLinter) checkUnnecessaryNesting(root *query.Node) {
	root.Walk(func(n *query.Node) bool {
		if n.Operator != query.OpAnd && n.Operator != query.OpOr {
			return true
		}
		for _, child := range n.Children {
			if child.Operator == n.Operator && child.Field == nil {
				t.msgs.Add(lint.CodeUnnecessaryParentheses, []query.Span{child.Span},
					fmt.Sprintf("Nested %s inside %s changes nothing; the groups can be merged.",
						child.Operator, n.Operator))
			}
		}
		return true
	})
}

// checkRedundantTerms compares sibling terms that are searched under the same
// field. AND and OR groups are compared pairwise; a left-folded NOT chain
// counts as one group whose first operand is the kept side and exempt from
// comparison. Equal terms are duplicates. For broader and narrower phrase
// pairs, AND makes the broader term redundant while OR and NOT make the
// narrower one redundant. Exact-match fields carry controlled vocabulary where
// a phrase containing another is a different concept, so only equality counts
// there.
func (t *treeLinter) checkRedundantTerms(root *query.Node) {
	t.checkRedundantGroup(root, true)
}

func (t *treeLinter) checkRedundantGroup(n *query.Node, chainHead bool) {
	switch n.Operator {
	case query.OpAnd, query.OpOr:
		for i, a := range n.Children {
			for _, b := range n.Children[i+1:] {
				t.compareTerms(n.Operator, a, b)
			}
		}
	case query.OpNot:
		if chainHead {
			operands := notChainOperands(n)
			for i, a := range operands[1:] {
				for _, b := range operands[i+2:] {
					t.compareTerms(query.OpNot, a, b)
				}
			}
		}
	}
	for i, child := range n.Children {
		head := !(n.Operator == query.OpNot && i == 0 && child.Operator == query.OpNot)
		t.checkRedundantGroup(child, head)
	}
}

// notChainOperands unfolds a left-folded NOT chain into its operand list, so
// Not(Not(a, b), c) yields [a, b, c].
func notChainOperands(n *query.Node) []*query.Node {
	if n.Operator != query.OpNot || len(n.Children) == 0 {
		return []*query.Node{n}
	}
	operands := notChainOperands(n.Children[0])
	return append(operands, n.Children[1:]...)
}

func (t *treeLinter) compareTerms(op query.OperatorKind, a, b *query.Node) {
	if !a.IsTerm() || !b.IsTerm() || a.Field == nil || b.Field == nil {
		return
	}
	if !a.Field.Equal(b.Field) {
		return
	}
	va, vb := normalizeTerm(a.Value), normalizeTerm(b.Value)
	if va == vb {
		t.msgs.Add(lint.CodeRedundantTerm, []query.Span{a.Span, b.Span},
			fmt.Sprintf("Term %q appears more than once in this group.", a.Value))
		return
	}
	if spec, ok := t.grammar.LookupField(a.Field.Code); ok && spec.Exact {
		return
	}
	broader, narrower := a, b
	switch {
	case containsPhrase(vb, va):
		// a is the broader phrase.
	case containsPhrase(va, vb):
		broader, narrower = b, a
	default:
		return
	}
	switch op {
	case query.OpAnd:
		t.msgs.Add(lint.CodeRedundantTerm, []query.Span{broader.Span, narrower.Span},
			fmt.Sprintf("Term %q is already implied by %q in an AND group.",
				broader.Value, narrower.Value))
	case query.OpNot:
		t.msgs.Add(lint.CodeRedundantTerm, []query.Span{broader.Span, narrower.Span},
			fmt.Sprintf("Excluding %q already excludes %q.",
				broader.Value, narrower.Value))
	default:
		t.msgs.Add(lint.CodeRedundantTerm, []query.Span{broader.Span, narrower.Span},
			fmt.Sprintf("Term %q is already covered by %q in an OR group.",
				narrower.Value, broader.Value))
	}
}

// checkFilterPlacement warns about date and journal filters buried in
// subqueries, where they restrict only part of the result set and usually
// indicate a misplaced clause.
func (t *treeLinter) checkFilterPlacement(n *query.Node, level int) {
	if n.IsTerm() {
		if level < 2 || n.Field == nil {
			return
		}
		switch {
		case t.fieldCovers(n.Field, query.FieldYearPublication):
			t.msgs.Add(lint.CodeDateFilterInSubquery, []query.Span{n.Span},
				"Date filters inside a subquery restrict only that branch.")
		case t.fieldCovers(n.Field, query.FieldJournal),
			t.fieldCovers(n.Field, query.FieldPublicationName):
			t.msgs.Add(lint.CodeJournalFilterInSubquery, []query.Span{n.Span},
				"Journal filters inside a subquery restrict only that branch.")
		}
		return
	}
	for _, child := range n.Children {
		t.checkFilterPlacement(child, level+1)
	}
}

var (
	yearRe = regexp.MustCompile(`^\d{4}(-\d{4})?$`)
	isbnRe = regexp.MustCompile(`^(\d{4}-\d{3}[\dxX]|\d{10}|\d{13}|\d{1,5}-\d{1,7}-\d{1,7}-[\dxX])$`)
	doiRe  = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
)

// checkTermContent applies the grammar's per-term content rules: publication
// year format and span, identifier formats, and wildcard placement.
func (t *treeLinter) checkTermContent(root *query.Node) {
	for _, term := range root.Terms() {
		value := strings.Trim(term.Value, `"`)
		switch {
		case term.Field != nil && t.fieldCovers(term.Field, query.FieldYearPublication):
			t.checkYear(term, value)
		case term.Field != nil && t.fieldCovers(term.Field, query.FieldISSNISBN) && t.grammar.CheckISBN:
			if !isbnRe.MatchString(value) {
				t.msgs.Add(lint.CodeISBNFormatInvalid, []query.Span{term.Span},
					fmt.Sprintf("%q is not a valid ISSN or ISBN.", term.Value))
			}
		case term.Field != nil && t.fieldCovers(term.Field, query.FieldDOI) && t.grammar.CheckDOI:
			if !doiRe.MatchString(value) {
				t.msgs.Add(lint.CodeDOIFormatInvalid, []query.Span{term.Span},
					fmt.Sprintf("%q is not a valid DOI.", term.Value))
			}
		default:
			if t.grammar.CheckWildcards {
				t.checkWildcards(term, value)
			} else if strings.ContainsAny(value, "*?$") {
				t.msgs.Add(lint.CodePotentialWildcard, []query.Span{term.Span},
					fmt.Sprintf("The wildcard in %q may be read literally; check the platform's truncation syntax.",
						term.Value))
			}
		}
	}
}

func (t *treeLinter) checkYear(term *query.Node, value string) {
	if !t.grammar.CheckYearFormat {
		return
	}
	if strings.ContainsAny(value, "*?$") {
		t.msgs.Add(lint.CodeInvalidWildcardUse, []query.Span{term.Span},
			"Wildcards cannot be used in a publication year.")
		return
	}
	if !yearRe.MatchString(value) {
		t.msgs.Add(lint.CodeYearFormatInvalid, []query.Span{term.Span},
			fmt.Sprintf("%q is not a valid publication year or year range.", term.Value))
		return
	}
	if t.grammar.YearSpanMax > 0 {
		if from, to, ok := yearRange(value); ok && to-from > t.grammar.YearSpanMax {
			t.msgs.Add(lint.CodeYearSpanViolation, []query.Span{term.Span},
				fmt.Sprintf("Year ranges may span at most %d years.", t.grammar.YearSpanMax))
			// Clamp so downstream output stays searchable.
			term.Value = fmt.Sprintf("%d-%d", from, from+t.grammar.YearSpanMax)
		}
	}
}

// checkWildcards enforces the usual database rules: no standalone wildcard,
// no wildcard directly after a special character, and at least a few literal
// characters before a right-hand truncation.
func (t *treeLinter) checkWildcards(term *query.Node, value string) {
	if value == "*" || value == "?" || value == "$" {
		t.msgs.Add(lint.CodeInvalidWildcardUse, []query.Span{term.Span},
			"A wildcard cannot stand alone.")
		return
	}
	for i, r := range value {
		if r != '*' && r != '?' && r != '$' {
			continue
		}
		if i > 0 && strings.ContainsRune(`/@&"!#`, rune(value[i-1])) {
			t.msgs.Add(lint.CodeInvalidWildcardUse, []query.Span{term.Span},
				fmt.Sprintf("Wildcard after %q is not supported.", string(value[i-1])))
			return
		}
		if i == len(value)-1 && i < 4 {
			t.msgs.Add(lint.CodeInvalidWildcardUse, []query.Span{term.Span},
				"Right-hand truncation needs at least four preceding characters.")
			return
		}
	}
}

func (t *treeLinter) fieldCovers(f *query.SearchField, g query.GenericField) bool {
	spec, ok := t.grammar.LookupField(f.Code)
	return ok && spec.HasGeneric(g)
}

// pushFieldsToTerms copies each group's field down to the terms beneath it
// that name no more specific one. Operator fields stay in place; terms end up
// with the field they are effectively searched under.
func pushFieldsToTerms(n *query.Node, inherited *query.SearchField) {
	if n.Field != nil {
		inherited = n.Field
	}
	if n.IsTerm() {
		if n.Field == nil && inherited != nil {
			n.AttachField(inherited)
		}
		return
	}
	for _, child := range n.Children {
		pushFieldsToTerms(child, inherited)
	}
}

func normalizeTerm(value string) string {
	return strings.ToLower(strings.TrimSpace(strings.Trim(value, `"`)))
}

// containsPhrase reports whether narrower contains broader as a whole-word
// phrase, e.g. "wearable device" contains "device" but not "vice".
func containsPhrase(narrower, broader string) bool {
	nw := strings.Fields(narrower)
	bw := strings.Fields(broader)
	if len(bw) == 0 || len(bw) >= len(nw) {
		return false
	}
	for i := 0; i+len(bw) <= len(nw); i++ {
		match := true
		for j := range bw {
			if nw[i+j] != bw[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// yearRange parses "YYYY" or "YYYY-YYYY".
func yearRange(value string) (from, to int, ok bool) {
	parts := strings.SplitN(value, "-", 2)
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	if len(parts) == 1 {
		return from, from, true
	}
	to, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}

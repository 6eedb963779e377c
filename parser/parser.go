// Package parser turns platform-specific search strings into query trees.
//
// Parsing is a fixed pipeline: tokenize, lint and normalize the token
// sequence, make implicit operator precedence explicit, build the tree, lint
// the tree. All diagnostics are collected into a single list; whether an
// Error-severity diagnostic aborts parsing depends on the mode.
package parser

import (
	"fmt"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/query"
)

// MaxNestingDepth bounds explicit parenthesis nesting. The builder recurses
// per nesting level, so the bound keeps stack depth proportional to a small
// constant regardless of input.
const MaxNestingDepth = 128

// Mode selects how Error-severity diagnostics are handled.
type Mode int

const (
	// NonStrict records errors and continues with a best-effort
	// substitution (fallback field, clamped distance).
	NonStrict Mode = iota
	// Strict aborts on the first Error-severity diagnostic.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "non-strict"
}

// Options configures one parse.
type Options struct {
	Mode Mode

	// FieldGeneral is a field code supplied outside the query string, as
	// search interfaces often carry it in a separate form element. It is
	// attached to the root when the query itself names no field.
	FieldGeneral string
}

// SyntaxError is returned when diagnostics prevent constructing a tree. The
// triggering diagnostic and the full query are carried for rendering.
type SyntaxError struct {
	Message lint.Message
	Query   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s in query %q", e.Message.String(), e.Query)
}

// Parse parses input according to the grammar. It returns the query tree and
// every diagnostic recorded along the way. On a nil tree the error is either
// a *SyntaxError naming the triggering diagnostic or an internal defect.
//
// The returned diagnostics are meaningful even when err is non-nil.
func Parse(input string, g *Grammar, opts Options) (*query.Node, []lint.Message, error) {
	msgs := &lint.Collector{}
	node, err := parseCollect(input, g, opts, msgs)
	return node, msgs.Messages(), err
}

func parseCollect(input string, g *Grammar, opts Options, msgs *lint.Collector) (*query.Node, error) {
	tokens := Tokenize(input, g)
	tl := &tokenLinter{input: input, grammar: g, tokens: tokens, msgs: msgs, opts: opts}
	tokens = tl.run()
	if err := abortError(input, opts, msgs); err != nil {
		return nil, err
	}

	root, err := buildTree(tokens, g, msgs)
	if err != nil {
		if msg, ok := msgs.FirstOfSeverity(lint.Fatal); ok {
			return nil, &SyntaxError{Message: msg, Query: input}
		}
		return nil, fmt.Errorf("internal: %w", err)
	}

	lintTree(root, g, opts, msgs)
	if err := abortError(input, opts, msgs); err != nil {
		return nil, err
	}

	if opts.FieldGeneral != "" && root.Field == nil {
		root.AttachField(query.NewSearchField(g.CanonicalField(opts.FieldGeneral)))
	}

	if err := root.SetPlatform(g.Name, g.UnaryNot); err != nil {
		return nil, fmt.Errorf("internal: %w", err)
	}
	return root, nil
}

// abortError maps recorded diagnostics to the mode's abort threshold: Fatal
// always aborts, Error aborts in strict mode only.
func abortError(input string, opts Options, msgs *lint.Collector) error {
	threshold := lint.Fatal
	if opts.Mode == Strict {
		threshold = lint.Error
	}
	if msg, ok := msgs.FirstOfSeverity(threshold); ok {
		return &SyntaxError{Message: msg, Query: input}
	}
	return nil
}

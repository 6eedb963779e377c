package parser

import (
	"testing"

	"github.com/dhamidi/sq/lint"
)

func TestRedundantTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "duplicate term in or group",
			input: "TI=dementia OR TI=dementia",
			want:  1,
		},
		{
			name:  "broader term redundant under and",
			input: `TI=device AND TI="wearable device"`,
			want:  1,
		},
		{
			name:  "narrower term redundant under or",
			input: `TI=device OR TI="wearable device"`,
			want:  1,
		},
		{
			name:  "different fields are unrelated",
			input: `TI=device AND AB="wearable device"`,
			want:  0,
		},
		{
			name:  "group field makes siblings comparable",
			input: `TI=(device OR "wearable device")`,
			want:  1,
		},
		{
			name:  "nested same-operator group forms one subquery",
			input: `TI=device AND (TI=care AND TI="wearable device")`,
			want:  1,
		},
		{
			name:  "substring without word boundary is fine",
			input: "TI=vice OR TI=device",
			want:  0,
		},
		{
			name:  "exact-match field only flags equality",
			input: `MH=dementia AND MH="dementia vascular"`,
			want:  0,
		},
		{
			name:  "quoting differences do not hide duplicates",
			input: `TI=dementia OR TI="dementia"`,
			want:  1,
		},
		{
			name:  "duplicate excluded term in a not chain",
			input: "TI=dementia NOT TI=care NOT TI=care",
			want:  1,
		},
		{
			name:  "kept operand of a not chain is exempt",
			input: "TI=care NOT TI=care",
			want:  0,
		},
		{
			name:  "narrower excluded term is already covered",
			input: `TI=dementia NOT TI=care NOT TI="care home"`,
			want:  1,
		},
		{
			name:  "unrelated terms",
			input: "TI=dementia AND TI=care",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msgs := mustParse(t, tt.input)
			if got := countCode(msgs, lint.CodeRedundantTerm); got != tt.want {
				t.Errorf("Parse(%q) produced %d redundant-term warnings, want %d (all: %v)",
					tt.input, got, tt.want, codesOf(msgs))
			}
		})
	}
}

func TestRedundantTermWarningCarriesBothPositions(t *testing.T) {
	input := "TI=dementia OR TI=dementia"
	_, msgs := mustParse(t, input)

	for _, m := range msgs {
		if m.Code != lint.CodeRedundantTerm {
			continue
		}
		if len(m.Positions) != 2 {
			t.Fatalf("positions = %v, want both occurrences", m.Positions)
		}
		for _, p := range m.Positions {
			if input[p.Start:p.End] != "dementia" {
				t.Errorf("position %v covers %q", p, input[p.Start:p.End])
			}
		}
		return
	}
	t.Fatalf("no redundant-term warning in %v", codesOf(msgs))
}

func TestUnnecessaryNesting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "same-operator nesting",
			input: "(a AND b) AND c",
			want:  1,
		},
		{
			name:  "different operators need the group",
			input: "(a OR b) AND c",
			want:  0,
		},
		{
			name:  "field-scoping group is intentional",
			input: "TI=(a AND b) AND c",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msgs := mustParse(t, tt.input)
			if got := countCode(msgs, lint.CodeUnnecessaryParentheses); got != tt.want {
				t.Errorf("Parse(%q) produced %d warnings, want %d (all: %v)",
					tt.input, got, tt.want, codesOf(msgs))
			}
		})
	}
}

func TestPotentialWildcardOnUncheckedPlatform(t *testing.T) {
	g := testGrammar()
	g.CheckWildcards = false
	_, msgs, err := Parse("TI=dement*", g, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := countCode(msgs, lint.CodePotentialWildcard); got != 1 {
		t.Errorf("got %d potential-wildcard warnings, want 1 (all: %v)", got, codesOf(msgs))
	}
}

func TestFilterPlacement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  lint.Code
		want  int
	}{
		{
			name:  "date filter at top level is fine",
			input: "dementia AND PY=2020",
			code:  lint.CodeDateFilterInSubquery,
			want:  0,
		},
		{
			name:  "date filter in a subquery",
			input: "a AND (b OR PY=2020)",
			code:  lint.CodeDateFilterInSubquery,
			want:  1,
		},
		{
			name:  "journal filter in a subquery",
			input: "a AND (b OR SO=nature)",
			code:  lint.CodeJournalFilterInSubquery,
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msgs := mustParse(t, tt.input)
			if got := countCode(msgs, tt.code); got != tt.want {
				t.Errorf("Parse(%q) produced %d %s, want %d (all: %v)",
					tt.input, got, tt.code, tt.want, codesOf(msgs))
			}
		})
	}
}

func TestYearChecks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  lint.Code
		want  int
	}{
		{"plain year", "PY=2020", "", 0},
		{"year range", "PY=2018-2020", "", 0},
		{"bad year format", "PY=20x5", lint.CodeYearFormatInvalid, 1},
		{"wildcard in year", "PY=20*", lint.CodeInvalidWildcardUse, 1},
		{"range too wide", "PY=2000-2020", lint.CodeYearSpanViolation, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msgs := mustParse(t, tt.input)
			if tt.code == "" {
				for _, m := range msgs {
					if m.Severity >= lint.Error {
						t.Errorf("Parse(%q) unexpected message %v", tt.input, m)
					}
				}
				return
			}
			if got := countCode(msgs, tt.code); got != tt.want {
				t.Errorf("Parse(%q) produced %d %s, want %d (all: %v)",
					tt.input, got, tt.code, tt.want, codesOf(msgs))
			}
		})
	}
}

func TestYearSpanIsClampedNotRejected(t *testing.T) {
	node, _, err := Parse("PY=2000-2020", testGrammar(), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// The linter runs on a scoped copy; clamping must not leak into spans,
	// but parsing still succeeds with a warning.
	if node == nil {
		t.Fatalf("no tree")
	}
}

func TestWildcardChecks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"standalone wildcard", "TI=*", 1},
		{"short right-hand truncation", "TI=ca*", 1},
		{"long right-hand truncation", "TI=dement*", 0},
		{"wildcard after special character", "TI=dement/*", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msgs := mustParse(t, tt.input)
			if got := countCode(msgs, lint.CodeInvalidWildcardUse); got != tt.want {
				t.Errorf("Parse(%q) produced %d wildcard warnings, want %d (all: %v)",
					tt.input, got, tt.want, codesOf(msgs))
			}
		})
	}
}

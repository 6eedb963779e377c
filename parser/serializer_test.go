package parser

import (
	"testing"

	"github.com/dhamidi/sq/query"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "flat and",
			input: "a AND b AND c",
			want:  "a AND b AND c",
		},
		{
			name:  "derived parentheses",
			input: "a OR (b AND c)",
			want:  "a OR (b AND c)",
		},
		{
			name:  "synthetic grouping becomes explicit",
			input: "a OR b AND c",
			want:  "a OR (b AND c)",
		},
		{
			name:  "field on a term",
			input: "TI=dementia",
			want:  "TI=dementia",
		},
		{
			name:  "common term fields hoist to the group",
			input: "TI=a AND TI=b",
			want:  "TI=(a AND b)",
		},
		{
			name:  "mixed fields stay on terms",
			input: "TI=a AND AB=b",
			want:  "TI=a AND AB=b",
		},
		{
			name:  "field-scoped group",
			input: "TI=(a OR b) AND c",
			want:  "TI=(a OR b) AND c",
		},
		{
			name:  "proximity distance",
			input: "a NEAR/3 b",
			want:  "a NEAR/3 b",
		},
		{
			name:  "binary not",
			input: "a NOT b",
			want:  "a NOT b",
		},
		{
			name:  "unary not",
			input: "NOT a",
			want:  "NOT a",
		},
		{
			name:  "alias renders canonically",
			input: "title=dementia",
			want:  "TI=dementia",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGrammar()
			node, _, err := Parse(tt.input, g, Options{})
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			got, err := Serialize(node, g)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Serialize(Parse(%q)) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSerializeDoesNotModifyTree(t *testing.T) {
	g := testGrammar()
	node, _, err := Parse("TI=a AND TI=b", g, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if _, err := Serialize(node, g); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// Hoisting must have happened on a copy.
	if node.Field != nil {
		t.Errorf("Serialize() hoisted fields onto the caller's root")
	}
	for _, child := range node.Children {
		if child.Field == nil || child.Field.Code != "TI=" {
			t.Errorf("Serialize() stripped the field from %q", child.Value)
		}
	}
}

func TestSerializeUnknownFieldFails(t *testing.T) {
	g := testGrammar()
	node := query.NewTerm("dementia", query.NewSearchField("ZZ="), query.Span{Start: 0, End: 8})
	if _, err := Serialize(node, g); err == nil {
		t.Errorf("Serialize() accepted an unknown field code")
	}
}

func TestSerializeNilQueryFails(t *testing.T) {
	if _, err := Serialize(nil, testGrammar()); err == nil {
		t.Errorf("Serialize(nil) succeeded")
	}
}

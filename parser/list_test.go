package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/sq/lint"
)

func TestLooksLikeList(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1. dementia\n2. care\n3. #1 AND #2", true},
		{"dementia AND care", false},
		{"prevalence of 1.5 anomalies", false},
		{"  2. indented item", true},
	}
	for _, tt := range tests {
		if got := LooksLikeList(tt.input); got != tt.want {
			t.Errorf("LooksLikeList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseList(t *testing.T) {
	input := strings.Join([]string{
		"1. dementia",
		`2. "cognitive decline"`,
		"3. #1 OR #2",
	}, "\n")

	node, msgs, err := ParseList(input, testGrammar(), Options{})
	if err != nil {
		t.Fatalf("ParseList() error = %v (messages: %v)", err, msgs)
	}
	if got := node.StringInline(); got != `OR[dementia, "cognitive decline"]` {
		t.Errorf("tree = %s", got)
	}
}

func TestParseListNestedReferences(t *testing.T) {
	input := strings.Join([]string{
		"1. dementia",
		"2. care",
		"3. #1 AND #2",
		"4. prevention",
		"5. #3 OR #4",
	}, "\n")

	node, _, err := ParseList(input, testGrammar(), Options{})
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	if got := node.StringInline(); got != "OR[AND[dementia, care], prevention]" {
		t.Errorf("tree = %s", got)
	}
}

func TestParseListCombiningIsClean(t *testing.T) {
	input := strings.Join([]string{
		"1. dementia OR alzheimer",
		"2. care OR treatment",
		"3. #1 AND #2",
	}, "\n")

	node, msgs, err := ParseList(input, testGrammar(), Options{})
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("messages = %v, want none", msgs)
	}
	if got := node.StringInline(); got != "AND[OR[dementia, alzheimer], OR[care, treatment]]" {
		t.Errorf("tree = %s", got)
	}
}

func TestParseListSpansAreAbsolute(t *testing.T) {
	input := "1. dementia\n2. care and OR repair"
	_, msgs, err := ParseList(input, testGrammar(), Options{})
	if err == nil {
		t.Fatalf("ParseList() accepted an invalid second line")
	}

	found := false
	for _, m := range msgs {
		if m.Code != lint.CodeInvalidTokenSequence {
			continue
		}
		found = true
		span := m.FirstSpan()
		if span.IsSynthetic() {
			continue
		}
		if !strings.Contains(input[span.Start:span.End], "OR") {
			t.Errorf("span %v covers %q, want the operator pair on line two",
				span, input[span.Start:span.End])
		}
	}
	if !found {
		t.Fatalf("no invalid-token-sequence message in %v", codesOf(msgs))
	}
}

func TestParseListErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  lint.Code
	}{
		{
			name:  "malformed line",
			input: "1. dementia\nnot a list line",
			code:  lint.CodeInvalidListItem,
		},
		{
			name:  "reference to a missing line",
			input: "1. dementia\n2. #5 OR #1",
			code:  lint.CodeInvalidListReference,
		},
		{
			name:  "self reference",
			input: "1. #1 OR #1",
			code:  lint.CodeInvalidListReference,
		},
		{
			name:  "no combining line",
			input: "1. dementia\n2. care",
			code:  lint.CodeMissingOperatorNode,
		},
		{
			name:  "last line does not combine",
			input: "1. dementia\n2. #1 AND #1\n3. care",
			code:  lint.CodeMissingRootNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msgs, err := ParseList(tt.input, testGrammar(), Options{})
			if err == nil {
				t.Fatalf("ParseList(%q) succeeded", tt.input)
			}
			if countCode(msgs, tt.code) == 0 {
				t.Errorf("ParseList(%q) messages %v, want %s", tt.input, codesOf(msgs), tt.code)
			}
		})
	}
}

func TestParseListBlankLinesAreSkipped(t *testing.T) {
	input := "1. dementia\n\n2. care\n\n3. #1 AND #2\n"
	node, _, err := ParseList(input, testGrammar(), Options{})
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	if got := node.StringInline(); got != "AND[dementia, care]" {
		t.Errorf("tree = %s", got)
	}
}

package platform

import (
	"testing"

	"github.com/dhamidi/sq/parser"
)

func TestTokenizeWOS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []parser.Token
	}{
		{
			name:  "field and term",
			input: "TI=dementia",
			want: []parser.Token{
				{Value: "TI=", Kind: parser.TokenField},
				{Value: "dementia", Kind: parser.TokenTerm},
			},
		},
		{
			name:  "boolean pair",
			input: "dementia AND care",
			want: []parser.Token{
				{Value: "dementia", Kind: parser.TokenTerm},
				{Value: "AND", Kind: parser.TokenLogicOperator},
				{Value: "care", Kind: parser.TokenTerm},
			},
		},
		{
			name:  "adjacent bare terms merge",
			input: "wearable device",
			want: []parser.Token{
				{Value: "wearable device", Kind: parser.TokenTerm},
			},
		},
		{
			name:  "quoted phrase stays one term",
			input: `"digital health" OR ehealth`,
			want: []parser.Token{
				{Value: `"digital health"`, Kind: parser.TokenTerm},
				{Value: "OR", Kind: parser.TokenLogicOperator},
				{Value: "ehealth", Kind: parser.TokenTerm},
			},
		},
		{
			name:  "proximity with distance",
			input: "a NEAR/3 b",
			want: []parser.Token{
				{Value: "a", Kind: parser.TokenTerm},
				{Value: "NEAR/3", Kind: parser.TokenProximityOperator},
				{Value: "b", Kind: parser.TokenTerm},
			},
		},
		{
			name:  "parenthesized group with field",
			input: "TS=(eHealth OR mHealth)",
			want: []parser.Token{
				{Value: "TS=", Kind: parser.TokenField},
				{Value: "(", Kind: parser.TokenParenOpen},
				{Value: "eHealth", Kind: parser.TokenTerm},
				{Value: "OR", Kind: parser.TokenLogicOperator},
				{Value: "mHealth", Kind: parser.TokenTerm},
				{Value: ")", Kind: parser.TokenParenClosed},
			},
		},
		{
			name:  "lowercase operators are still operators",
			input: "a and b",
			want: []parser.Token{
				{Value: "a", Kind: parser.TokenTerm},
				{Value: "and", Kind: parser.TokenLogicOperator},
				{Value: "b", Kind: parser.TokenTerm},
			},
		},
		{
			name:  "operator prefix inside a word is a term",
			input: "android OR origami",
			want: []parser.Token{
				{Value: "android", Kind: parser.TokenTerm},
				{Value: "OR", Kind: parser.TokenLogicOperator},
				{Value: "origami", Kind: parser.TokenTerm},
			},
		},
		{
			name:  "unparseable characters become unknown tokens",
			input: "dementia {care}",
			want: []parser.Token{
				{Value: "dementia", Kind: parser.TokenTerm},
				{Value: "{care}", Kind: parser.TokenUnknown},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Tokenize(tt.input, WOS)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), tokenValues(got), len(tt.want))
			}
			for i := range got {
				if got[i].Value != tt.want[i].Value || got[i].Kind != tt.want[i].Kind {
					t.Errorf("token %d = %q (%v), want %q (%v)",
						i, got[i].Value, got[i].Kind, tt.want[i].Value, tt.want[i].Kind)
				}
			}
		})
	}
}

func TestTokenizeSpansCoverInput(t *testing.T) {
	input := `TS=("digital health" AND wearable) NEAR/5 adoption`
	tokens := parser.Tokenize(input, WOS)

	for _, tok := range tokens {
		if tok.IsSynthetic() {
			t.Errorf("tokenizer produced a synthetic token: %v", tok)
			continue
		}
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Value {
			t.Errorf("span of %q covers %q", tok.Value, got)
		}
	}
	if gaps := parser.CoverageGaps(input, tokens); len(gaps) != 0 {
		t.Errorf("uncovered input: %v", gaps)
	}
}

func TestTokenizePubMed(t *testing.T) {
	input := `dementia[tiab] AND 2010:2020[dp]`
	want := []struct {
		value string
		kind  parser.TokenKind
	}{
		{"dementia", parser.TokenTerm},
		{"[tiab]", parser.TokenField},
		{"AND", parser.TokenLogicOperator},
		{"2010", parser.TokenTerm},
		{":", parser.TokenRangeOperator},
		{"2020", parser.TokenTerm},
		{"[dp]", parser.TokenField},
	}

	got := parser.Tokenize(input, PubMed)
	if len(got) != len(want) {
		t.Fatalf("got tokens %v, want %d", tokenValues(got), len(want))
	}
	for i := range got {
		if got[i].Value != want[i].value || got[i].Kind != want[i].kind {
			t.Errorf("token %d = %q (%v), want %q (%v)",
				i, got[i].Value, got[i].Kind, want[i].value, want[i].kind)
		}
	}
}

func TestTokenizeEBSCO(t *testing.T) {
	input := `TI cloud N5 computing`
	got := parser.Tokenize(input, EBSCO)
	kinds := []parser.TokenKind{parser.TokenField, parser.TokenTerm,
		parser.TokenProximityOperator, parser.TokenTerm}
	if len(got) != len(kinds) {
		t.Fatalf("got tokens %v, want %d", tokenValues(got), len(kinds))
	}
	for i, kind := range kinds {
		if got[i].Kind != kind {
			t.Errorf("token %d %q = %v, want %v", i, got[i].Value, got[i].Kind, kind)
		}
	}
}

func tokenValues(tokens []parser.Token) []string {
	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.Value
	}
	return values
}

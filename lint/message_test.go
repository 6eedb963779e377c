package lint

import (
	"strings"
	"testing"

	"github.com/dhamidi/sq/query"
)

func TestCatalogLabelsUnique(t *testing.T) {
	seen := map[string]Code{}
	for code, info := range Catalog {
		if info.Label == "" {
			t.Errorf("code %s has no label", code)
		}
		if other, dup := seen[info.Label]; dup {
			t.Errorf("label %q used by both %s and %s", info.Label, code, other)
		}
		seen[info.Label] = code
	}
}

func TestCatalogSeverityMatchesNamespace(t *testing.T) {
	for code, info := range Catalog {
		var want Severity
		switch code[0] {
		case 'F':
			want = Fatal
		case 'E':
			want = Error
		case 'W':
			want = Warning
		default:
			t.Errorf("code %s has unknown namespace", code)
			continue
		}
		if info.Severity != want {
			t.Errorf("code %s has severity %v, want %v", code, info.Severity, want)
		}
	}
}

func TestCollectorDeduplicates(t *testing.T) {
	c := &Collector{}
	span := []query.Span{{Start: 2, End: 5}}
	c.Add(CodeOperatorCapitalization, span, "first")
	c.Add(CodeOperatorCapitalization, span, "second")
	c.Add(CodeOperatorCapitalization, []query.Span{{Start: 8, End: 11}}, "third")

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Details != "first" {
		t.Errorf("duplicate replaced the original: %q", msgs[0].Details)
	}
}

func TestCollectorOrdersByPosition(t *testing.T) {
	c := &Collector{}
	c.Add(CodeRedundantTerm, []query.Span{{Start: 20, End: 25}}, "late")
	c.Add(CodeFieldMissing, []query.Span{query.SyntheticSpan}, "nowhere")
	c.Add(CodeOperatorCapitalization, []query.Span{{Start: 3, End: 6}}, "early")

	msgs := c.Messages()
	if msgs[0].Details != "early" || msgs[1].Details != "late" || msgs[2].Details != "nowhere" {
		t.Errorf("unexpected order: %q, %q, %q", msgs[0].Details, msgs[1].Details, msgs[2].Details)
	}
}

func TestCollectorSeverityQueries(t *testing.T) {
	c := &Collector{}
	c.Add(CodeRedundantTerm, []query.Span{{Start: 0, End: 1}}, "")
	if c.HasFatal() {
		t.Errorf("HasFatal() true with only warnings")
	}
	if c.HasSeverity(Error) {
		t.Errorf("HasSeverity(Error) true with only warnings")
	}

	c.Add(CodeFieldUnsupported, []query.Span{{Start: 2, End: 3}}, "")
	if !c.HasSeverity(Error) {
		t.Errorf("HasSeverity(Error) false after adding an error")
	}
	if c.HasFatal() {
		t.Errorf("HasFatal() true without a fatal")
	}

	c.Add(CodeUnbalancedParentheses, []query.Span{{Start: 4, End: 5}}, "")
	if !c.HasFatal() {
		t.Errorf("HasFatal() false after adding a fatal")
	}

	msg, ok := c.FirstOfSeverity(Fatal)
	if !ok || msg.Code != CodeUnbalancedParentheses {
		t.Errorf("FirstOfSeverity(Fatal) = %v, %v", msg.Code, ok)
	}
}

func TestMessageShift(t *testing.T) {
	m := Message{
		Code:      CodeRedundantTerm,
		Positions: []query.Span{{Start: 3, End: 7}, query.SyntheticSpan},
	}
	shifted := m.Shift(10)
	if shifted.Positions[0] != (query.Span{Start: 13, End: 17}) {
		t.Errorf("Shift() moved to %v", shifted.Positions[0])
	}
	if !shifted.Positions[1].IsSynthetic() {
		t.Errorf("Shift() moved the synthetic span")
	}
	if m.Positions[0].Start != 3 {
		t.Errorf("Shift() mutated the receiver")
	}
}

func TestMessageString(t *testing.T) {
	m := Message{
		Code:     CodeUnbalancedParentheses,
		Label:    CodeUnbalancedParentheses.Label(),
		Severity: Fatal,
		Positions: []query.Span{
			{Start: 4, End: 5},
		},
		Details: "Opening parenthesis without a matching closing parenthesis.",
	}
	s := m.String()
	for _, want := range []string{"fatal", "F1002", "4-5"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

package query

// Span is a half-open [Start, End) character range in the original query
// string. Synthetic elements that were not present in the source carry
// SyntheticSpan.
type Span struct {
	Start int
	End   int
}

// SyntheticSpan marks tokens and nodes that were inserted by the pipeline
// rather than derived from the input text.
var SyntheticSpan = Span{Start: -1, End: -1}

func (s Span) IsSynthetic() bool {
	return s.Start < 0 || s.End < 0
}

func (s Span) Len() int {
	if s.IsSynthetic() {
		return 0
	}
	return s.End - s.Start
}

// Shift returns the span moved by delta. Synthetic spans are unaffected.
func (s Span) Shift(delta int) Span {
	if s.IsSynthetic() {
		return s
	}
	return Span{Start: s.Start + delta, End: s.End + delta}
}

package lint

import (
	"fmt"
	"sort"

	"github.com/dhamidi/sq/query"
)

// Severity classifies a linter message. Fatal aborts parsing always, Error
// aborts in strict mode, Warning never aborts.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal"
	case Error:
		return "error"
	default:
		return "warning"
	}
}

// Message is one positioned diagnostic produced while parsing or linting a
// query. Positions point into the original input string.
type Message struct {
	Code      Code
	Label     string
	Severity  Severity
	Positions []query.Span
	Details   string
}

func (m Message) String() string {
	if len(m.Positions) == 0 || m.Positions[0].IsSynthetic() {
		return fmt.Sprintf("%s [%s] %s", m.Severity, m.Code, m.Details)
	}
	p := m.Positions[0]
	return fmt.Sprintf("%s [%s] %s (at %d-%d)", m.Severity, m.Code, m.Details, p.Start, p.End)
}

// FirstSpan returns the first recorded position, or the synthetic span when
// the message has no source position.
func (m Message) FirstSpan() query.Span {
	if len(m.Positions) == 0 {
		return query.SyntheticSpan
	}
	return m.Positions[0]
}

// Shift returns the message with all source-derived positions moved by delta.
func (m Message) Shift(delta int) Message {
	shifted := make([]query.Span, len(m.Positions))
	for i, p := range m.Positions {
		shifted[i] = p.Shift(delta)
	}
	m.Positions = shifted
	return m
}

// Collector accumulates messages in discovery order and deduplicates exact
// repeats (same code, same positions).
type Collector struct {
	messages []Message
}

// Add records a message for the given code. Duplicate code+positions pairs
// are dropped, matching the consumer-visible contract that one finding is
// reported once.
func (c *Collector) Add(code Code, positions []query.Span, details string) {
	for _, m := range c.messages {
		if m.Code == code && spansEqual(m.Positions, positions) {
			return
		}
	}
	c.messages = append(c.messages, Message{
		Code:      code,
		Label:     code.Label(),
		Severity:  code.Severity(),
		Positions: positions,
		Details:   details,
	})
}

// Merge appends previously collected messages, keeping deduplication.
func (c *Collector) Merge(messages []Message) {
	for _, m := range messages {
		dup := false
		for _, have := range c.messages {
			if have.Code == m.Code && spansEqual(have.Positions, m.Positions) {
				dup = true
				break
			}
		}
		if !dup {
			c.messages = append(c.messages, m)
		}
	}
}

// HasFatal reports whether any collected message is fatal.
func (c *Collector) HasFatal() bool {
	for _, m := range c.messages {
		if m.Severity == Fatal {
			return true
		}
	}
	return false
}

// HasSeverity reports whether any collected message is at least as severe as
// min.
func (c *Collector) HasSeverity(min Severity) bool {
	for _, m := range c.messages {
		if m.Severity >= min {
			return true
		}
	}
	return false
}

// FirstOfSeverity returns the first message (in sorted order) at least as
// severe as min.
func (c *Collector) FirstOfSeverity(min Severity) (Message, bool) {
	for _, m := range c.Messages() {
		if m.Severity >= min {
			return m, true
		}
	}
	return Message{}, false
}

// Messages returns the collected messages in deterministic order: by first
// source position, then by discovery order. Messages without a source
// position sort last among equals.
func (c *Collector) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	sort.SliceStable(out, func(i, j int) bool {
		return firstPosition(out[i]) < firstPosition(out[j])
	})
	return out
}

func firstPosition(m Message) int {
	for _, p := range m.Positions {
		if !p.IsSynthetic() {
			return p.Start
		}
	}
	return int(^uint(0) >> 1)
}

func spansEqual(a, b []query.Span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

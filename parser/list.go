package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/query"
)

// List-format queries spell one numbered search per line and combine earlier
// lines by reference:
//
//	1. dementia
//	2. "cognitive decline"
//	3. #1 OR #2
//
// Query lines are parsed with the ordinary string parser; combining lines
// reference earlier results. The query of the last line is the result. All
// spans in diagnostics are absolute offsets into the multi-line input.

var (
	listItemRe   = regexp.MustCompile(`^(\d+)\.\s*(\S.*)$`)
	listDetectRe = regexp.MustCompile(`(?m)^\s*\d+\.\s`)
)

// LooksLikeList reports whether input is written in list format.
func LooksLikeList(input string) bool {
	return listDetectRe.MatchString(input)
}

type listItem struct {
	number  int
	content string
	// offset of content within the whole input
	offset int
	span   query.Span
	node   *query.Node
}

// ParseList parses a list-format query. Diagnostics from the individual
// lines are merged with their positions shifted to absolute offsets.
func ParseList(input string, g *Grammar, opts Options) (*query.Node, []lint.Message, error) {
	msgs := &lint.Collector{}
	node, err := parseListCollect(input, g, opts, msgs)
	return node, msgs.Messages(), err
}

func parseListCollect(input string, g *Grammar, opts Options, msgs *lint.Collector) (*query.Node, error) {
	if g.ListReference == nil {
		return nil, fmt.Errorf("list queries are not supported for platform %q", g.Name)
	}

	items, err := splitListItems(input, msgs)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty list query")
	}

	byNumber := make(map[int]*listItem, len(items))
	hasOperator := false
	for i := range items {
		item := &items[i]
		byNumber[item.number] = item
		if g.ListReference.MatchString(item.content) {
			hasOperator = true
		}
	}

	if len(items) > 1 {
		last := &items[len(items)-1]
		switch {
		case !hasOperator:
			msgs.Add(lint.CodeMissingOperatorNode, []query.Span{last.span},
				"The list never combines its queries; add a line like \"#1 AND #2\".")
		case !g.ListReference.MatchString(last.content):
			msgs.Add(lint.CodeMissingRootNode, []query.Span{last.span},
				"The last line must combine the earlier ones into a single query.")
		}
		if err := abortError(input, opts, msgs); err != nil {
			return nil, err
		}
	}

	for i := range items {
		item := &items[i]
		if g.ListReference.MatchString(item.content) {
			if err := parseOperatorItem(item, byNumber, input, g, msgs); err != nil {
				return nil, err
			}
		} else {
			node, lineMsgs, err := Parse(item.content, g, opts)
			for _, m := range lineMsgs {
				msgs.Merge([]lint.Message{m.Shift(item.offset)})
			}
			if err != nil {
				if se, ok := err.(*SyntaxError); ok {
					return nil, &SyntaxError{Message: se.Message.Shift(item.offset), Query: input}
				}
				return nil, err
			}
			item.node = node
		}
	}

	if err := abortError(input, opts, msgs); err != nil {
		return nil, err
	}
	return items[len(items)-1].node, nil
}

// splitListItems breaks the input into numbered items, tracking absolute
// offsets. Blank lines separate nothing and are skipped; any other line that
// does not match "N. query" is fatal.
func splitListItems(input string, msgs *lint.Collector) ([]listItem, error) {
	var items []listItem
	offset := 0
	for _, line := range strings.Split(input, "\n") {
		lineSpan := query.Span{Start: offset, End: offset + len(line)}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			offset += len(line) + 1
			continue
		}
		m := listItemRe.FindStringSubmatchIndex(line)
		if m == nil {
			msgs.Add(lint.CodeInvalidListItem, []query.Span{lineSpan},
				fmt.Sprintf("Lines must look like \"1. query\", got %q.", trimmed))
			offset += len(line) + 1
			continue
		}
		number, _ := strconv.Atoi(line[m[2]:m[3]])
		items = append(items, listItem{
			number:  number,
			content: line[m[4]:m[5]],
			offset:  offset + m[4],
			span:    lineSpan,
		})
		offset += len(line) + 1
	}
	if msg, ok := msgs.FirstOfSeverity(lint.Fatal); ok {
		return nil, &SyntaxError{Message: msg, Query: input}
	}
	return items, nil
}

// parseOperatorItem parses a combining line: references and logic operators
// alternating, one operator spelling per line.
func parseOperatorItem(item *listItem, byNumber map[int]*listItem, input string, g *Grammar, msgs *lint.Collector) error {
	tokenRe := regexp.MustCompile(g.ListReference.String() + `|(?i)\b(?:AND|OR|NOT)\b`)
	var (
		children []*query.Node
		operator string
	)
	expectRef := true
	pos := 0
	for _, loc := range tokenRe.FindAllStringIndex(item.content, -1) {
		word := item.content[loc[0]:loc[1]]
		span := query.Span{Start: item.offset + loc[0], End: item.offset + loc[1]}
		if gap := strings.TrimSpace(item.content[pos:loc[0]]); gap != "" {
			msgs.Add(lint.CodeInvalidTokenSequence, []query.Span{span},
				fmt.Sprintf("Cannot interpret %q in a combining line.", gap))
		}
		pos = loc[1]

		if g.ListReference.MatchString(word) && expectRef {
			number, err := strconv.Atoi(strings.TrimLeft(word, "#S"))
			if err != nil {
				number = -1
			}
			ref, ok := byNumber[number]
			if !ok || ref.number >= item.number || ref.node == nil {
				msgs.Add(lint.CodeInvalidListReference, []query.Span{span},
					fmt.Sprintf("%s does not refer to an earlier line.", word))
			} else {
				children = append(children, ref.node.Clone())
			}
			expectRef = false
			continue
		}
		if !g.ListReference.MatchString(word) && !expectRef {
			spelling := strings.ToUpper(word)
			if operator != "" && operator != spelling {
				msgs.Add(lint.CodeInvalidTokenSequence, []query.Span{span},
					"Combining lines use one operator; split mixed combinations over several lines.")
			}
			operator = spelling
			expectRef = true
			continue
		}
		msgs.Add(lint.CodeInvalidTokenSequence, []query.Span{span},
			fmt.Sprintf("Unexpected %q in a combining line.", word))
	}
	if expectRef && operator != "" {
		msgs.Add(lint.CodeInvalidTokenSequence, []query.Span{item.span},
			"A combining line cannot end with an operator.")
	}
	if msg, ok := msgs.FirstOfSeverity(lint.Fatal); ok {
		return &SyntaxError{Message: msg, Query: input}
	}

	switch {
	case operator == "" && len(children) == 1:
		item.node = children[0]
	case len(children) < 2:
		msgs.Add(lint.CodeInvalidListReference, []query.Span{item.span},
			"A combining line needs at least two references.")
		return &SyntaxError{Message: mustFirstFatal(msgs), Query: input}
	case operator == "NOT":
		node := children[0]
		for _, right := range children[1:] {
			node = query.NewOperator(query.OpNot, []*query.Node{node, right}, item.span)
		}
		item.node = node
	default:
		kind := query.OpAnd
		if operator == "OR" {
			kind = query.OpOr
		}
		item.node = query.NewOperator(kind, children, item.span)
	}
	item.node.SetPlatform(g.Name, g.UnaryNot)
	return nil
}

func mustFirstFatal(msgs *lint.Collector) lint.Message {
	msg, _ := msgs.FirstOfSeverity(lint.Fatal)
	return msg
}

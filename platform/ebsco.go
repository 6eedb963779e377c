package platform

import (
	"regexp"

	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/query"
)

// EBSCO covers the EBSCOhost interfaces: two-letter prefix fields written
// before the term ("TI cloud"), short proximity operators N5 and W5, and S1
// style line references in list queries.
var EBSCO = register(&parser.Grammar{
	Name: "ebsco",
	Patterns: []parser.Pattern{
		parser.NewPattern(parser.TokenParenOpen, `\(`),
		parser.NewPattern(parser.TokenParenClosed, `\)`),
		parser.NewPattern(parser.TokenLogicOperator, `(?i)(AND|OR|NOT)\b`),
		parser.NewPattern(parser.TokenProximityOperator, `(?i)[NW]\d{1,2}\b`),
		parser.NewPattern(parser.TokenField, `(TI|AB|AU|SU|TX|SO|KW|MH)\s`),
		parser.NewPattern(parser.TokenTerm, `"[^"]*"`),
		parser.NewPattern(parser.TokenTerm, `[\w\-*'&/.?#+]+`),
	},
	Precedence: map[query.OperatorKind]int{
		query.OpNear:   3,
		query.OpWithin: 3,
		query.OpNot:    2,
		query.OpAnd:    1,
		query.OpOr:     0,
	},
	Adjacency: map[parser.TokenKind][]parser.TokenKind{
		parser.TokenField: {parser.TokenTerm, parser.TokenParenOpen},
		parser.TokenTerm: {parser.TokenLogicOperator, parser.TokenProximityOperator,
			parser.TokenParenClosed},
		parser.TokenLogicOperator: {parser.TokenTerm, parser.TokenField,
			parser.TokenParenOpen},
		parser.TokenProximityOperator: {parser.TokenTerm, parser.TokenField,
			parser.TokenParenOpen},
		parser.TokenParenOpen: {parser.TokenTerm, parser.TokenField,
			parser.TokenParenOpen},
		parser.TokenParenClosed: {parser.TokenLogicOperator,
			parser.TokenProximityOperator, parser.TokenParenClosed},
	},
	Fields: []parser.FieldSpec{
		{Code: "TI", Aliases: []string{"title"},
			Generic: []query.GenericField{query.FieldTitle}},
		{Code: "AB", Aliases: []string{"abstract"},
			Generic: []query.GenericField{query.FieldAbstract}},
		{Code: "AU", Aliases: []string{"author"},
			Generic: []query.GenericField{query.FieldAuthor}},
		{Code: "SU", Aliases: []string{"subject"},
			Generic: []query.GenericField{query.FieldTopic}},
		{Code: "KW", Aliases: []string{"keywords"},
			Generic: []query.GenericField{query.FieldAuthorKeywords}},
		{Code: "MH", Aliases: []string{"mesh"}, Exact: true,
			Generic: []query.GenericField{query.FieldMeshTerm}},
		{Code: "SO", Aliases: []string{"source", "journal"},
			Generic: []query.GenericField{query.FieldJournal, query.FieldPublicationName}},
		{Code: "TX", Aliases: []string{"text", "all-text"},
			Generic: []query.GenericField{query.FieldAll, query.FieldText}},
	},
	FallbackField:    "TX",
	MaxProximity:     50,
	DefaultProximity: 5,
	ShortProximity:   true,
	UnaryNot:         true,
	ListReference:    regexp.MustCompile(`S\d+`),
}, "ebscohost", "ebsco-host")

package platform

import (
	"regexp"

	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/query"
)

// Generic is the platform-independent grammar: long-form prefix fields
// ("title="), permissive terms, and both proximity operators. It accepts
// almost anything lexically, leaving validation to the later passes, and is
// the usual source syntax for cross-platform translation.
var Generic = register(&parser.Grammar{
	Name: "generic",
	Patterns: []parser.Pattern{
		parser.NewPattern(parser.TokenParenOpen, `\(`),
		parser.NewPattern(parser.TokenParenClosed, `\)`),
		parser.NewPattern(parser.TokenLogicOperator, `(?i)(AND|OR|NOT)\b`),
		parser.NewPattern(parser.TokenProximityOperator, `(?i)(NEAR|WITHIN)(/\d{1,2})?\b`),
		parser.NewPattern(parser.TokenField, `[A-Za-z][A-Za-z-]*=`),
		parser.NewPattern(parser.TokenTerm, `"[^"]*"`),
		parser.NewPattern(parser.TokenTerm, `[^\s()]+`),
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
		{Code: "all=", Generic: []query.GenericField{query.FieldAll}},
		{Code: "title=", Aliases: []string{"ti="},
			Generic: []query.GenericField{query.FieldTitle}},
		{Code: "abstract=", Aliases: []string{"ab="},
			Generic: []query.GenericField{query.FieldAbstract}},
		{Code: "topic=", Generic: []query.GenericField{query.FieldTopic}},
		{Code: "author=", Aliases: []string{"au="},
			Generic: []query.GenericField{query.FieldAuthor}},
		{Code: "keywords=", Generic: []query.GenericField{query.FieldAuthorKeywords}},
		{Code: "mesh=", Exact: true,
			Generic: []query.GenericField{query.FieldMeshTerm}},
		{Code: "language=", Generic: []query.GenericField{query.FieldLanguage}},
		{Code: "year=", Aliases: []string{"py="},
			Generic: []query.GenericField{query.FieldYearPublication}},
		{Code: "journal=", Generic: []query.GenericField{query.FieldJournal,
			query.FieldPublicationName}},
		{Code: "doi=", Generic: []query.GenericField{query.FieldDOI}},
		{Code: "issn=", Aliases: []string{"isbn="},
			Generic: []query.GenericField{query.FieldISSNISBN}},
		{Code: "publisher=", Generic: []query.GenericField{query.FieldPublisher}},
		{Code: "affiliation=", Generic: []query.GenericField{query.FieldAffiliation}},
	},
	FallbackField:    "all=",
	MaxProximity:     15,
	DefaultProximity: 15,
	UnaryNot:         true,
	ListReference:    regexp.MustCompile(`#\d+`),
}, "default", "structured")

package platform

import (
	"regexp"

	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/query"
)

// WOS is the Web of Science advanced search grammar: prefix fields such as
// TS= and TI=, NEAR/x proximity up to 15, and a field expected on every
// clause.
var WOS = register(&parser.Grammar{
	Name: "wos",
	Patterns: []parser.Pattern{
		parser.NewPattern(parser.TokenParenOpen, `\(`),
		parser.NewPattern(parser.TokenParenClosed, `\)`),
		parser.NewPattern(parser.TokenLogicOperator, `(?i)(AND|OR|NOT)\b`),
		parser.NewPattern(parser.TokenProximityOperator, `(?i)NEAR(/\d{1,2})?\b`),
		parser.NewPattern(parser.TokenField, `[A-Za-z]{2,4}=`),
		parser.NewPattern(parser.TokenTerm, `"[^"]*"`),
		parser.NewPattern(parser.TokenTerm, `[\w\-/.!*,&+?$']+`),
	},
	Precedence: map[query.OperatorKind]int{
		query.OpNear: 3,
		query.OpNot:  2,
		query.OpAnd:  1,
		query.OpOr:   0,
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
		{Code: "TS=", Aliases: []string{"topic="},
			Generic: []query.GenericField{query.FieldTitle, query.FieldAbstract,
				query.FieldAuthorKeywords, query.FieldKeywordsPlus, query.FieldTopic}},
		{Code: "TI=", Aliases: []string{"title="},
			Generic: []query.GenericField{query.FieldTitle}},
		{Code: "AB=", Aliases: []string{"abstract="},
			Generic: []query.GenericField{query.FieldAbstract}},
		{Code: "ALL=", Aliases: []string{"all="},
			Generic: []query.GenericField{query.FieldAll}},
		{Code: "AU=", Aliases: []string{"author="},
			Generic: []query.GenericField{query.FieldAuthor}},
		{Code: "AK=", Aliases: []string{"author-keywords="},
			Generic: []query.GenericField{query.FieldAuthorKeywords}},
		{Code: "KP=", Aliases: []string{"keywords-plus="},
			Generic: []query.GenericField{query.FieldKeywordsPlus}},
		{Code: "LA=", Aliases: []string{"language="},
			Generic: []query.GenericField{query.FieldLanguage}},
		{Code: "PY=", Aliases: []string{"year=", "year-published="},
			Generic: []query.GenericField{query.FieldYearPublication}},
		{Code: "SO=", Aliases: []string{"journal=", "publication-name="},
			Generic: []query.GenericField{query.FieldJournal, query.FieldPublicationName}},
		{Code: "DO=", Aliases: []string{"doi="},
			Generic: []query.GenericField{query.FieldDOI}},
		{Code: "IS=", Aliases: []string{"issn=", "isbn="},
			Generic: []query.GenericField{query.FieldISSNISBN}},
		{Code: "AD=", Aliases: []string{"address="},
			Generic: []query.GenericField{query.FieldAffiliation}},
		{Code: "OG=", Aliases: []string{"organization="},
			Generic: []query.GenericField{query.FieldAffiliation}},
		{Code: "SU=", Aliases: []string{"research-area="},
			Generic: []query.GenericField{query.FieldTopic}},
	},
	FallbackField:    "ALL=",
	MaxProximity:     15,
	DefaultProximity: 15,
	InvalidTermChars: `@%^~\<>{}[]#`,
	ListReference:    regexp.MustCompile(`#\d+`),
	RequireField:     true,
	CheckYearFormat:  true,
	YearSpanMax:      5,
	CheckISBN:        true,
	CheckDOI:         true,
	CheckWildcards:   true,
}, "web-of-science", "wos-core")

package platform

import (
	"regexp"

	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/query"
)

// PubMed attaches fields as suffix tags after the term ("dementia[tiab]"),
// has no proximity operators, and supports date ranges with a colon
// ("2010:2020[dp]"). Fields never scope whole groups.
var PubMed = register(&parser.Grammar{
	Name: "pubmed",
	Patterns: []parser.Pattern{
		parser.NewPattern(parser.TokenParenOpen, `\(`),
		parser.NewPattern(parser.TokenParenClosed, `\)`),
		parser.NewPattern(parser.TokenLogicOperator, `(?i)(AND|OR|NOT)\b`),
		parser.NewPattern(parser.TokenField, `\[[A-Za-z ]{1,30}\]`),
		parser.NewPattern(parser.TokenRangeOperator, `:`),
		parser.NewPattern(parser.TokenTerm, `"[^"]*"`),
		parser.NewPattern(parser.TokenTerm, `[\w\-*'&/.,+]+`),
	},
	Precedence: map[query.OperatorKind]int{
		query.OpRange: 4,
		query.OpNot:   2,
		query.OpAnd:   1,
		query.OpOr:    0,
	},
	Adjacency: map[parser.TokenKind][]parser.TokenKind{
		parser.TokenTerm: {parser.TokenField, parser.TokenLogicOperator,
			parser.TokenParenClosed, parser.TokenRangeOperator},
		parser.TokenField:         {parser.TokenLogicOperator, parser.TokenParenClosed},
		parser.TokenRangeOperator: {parser.TokenTerm},
		parser.TokenLogicOperator: {parser.TokenTerm, parser.TokenParenOpen},
		parser.TokenParenOpen:     {parser.TokenTerm, parser.TokenParenOpen},
		parser.TokenParenClosed:   {parser.TokenLogicOperator, parser.TokenParenClosed},
	},
	Fields: []parser.FieldSpec{
		{Code: "[all]", Aliases: []string{"[all fields]"},
			Generic: []query.GenericField{query.FieldAll}},
		{Code: "[ti]", Aliases: []string{"[title]"},
			Generic: []query.GenericField{query.FieldTitle}},
		{Code: "[tiab]", Aliases: []string{"[title/abstract]"},
			Generic: []query.GenericField{query.FieldTitle, query.FieldAbstract}},
		{Code: "[ab]", Aliases: []string{"[abstract]"},
			Generic: []query.GenericField{query.FieldAbstract}},
		{Code: "[au]", Aliases: []string{"[author]"},
			Generic: []query.GenericField{query.FieldAuthor}},
		{Code: "[mh]", Aliases: []string{"[mesh]", "[mesh terms]"}, Exact: true,
			Generic: []query.GenericField{query.FieldMeshTerm}},
		{Code: "[dp]", Aliases: []string{"[date - publication]", "[pdat]"},
			Generic: []query.GenericField{query.FieldYearPublication}},
		{Code: "[ta]", Aliases: []string{"[journal]"},
			Generic: []query.GenericField{query.FieldJournal, query.FieldPublicationName}},
		{Code: "[la]", Aliases: []string{"[language]"},
			Generic: []query.GenericField{query.FieldLanguage}},
		{Code: "[tw]", Aliases: []string{"[text word]"},
			Generic: []query.GenericField{query.FieldText}},
	},
	FallbackField:    "[all]",
	FieldSuffix:      true,
	ListReference:    regexp.MustCompile(`#\d+`),
	NoOperatorFields: true,
	CheckYearFormat:  true,
}, "pubmed.gov", "medline")

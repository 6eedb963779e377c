package lint

// Code identifies one diagnostic. Codes are stable across releases: the
// namespace letter encodes the severity class (F fatal, E error, W warning)
// and the number never changes meaning. Codes sort by severity class first
// and discovery area second.
type Code string

const (
	// Fatal: parsing cannot produce a tree.
	CodeTokenizingFailed      Code = "F1001"
	CodeUnbalancedParentheses Code = "F1002"
	CodeUnbalancedQuotes      Code = "F1003"
	CodeInvalidTokenSequence  Code = "F1004"
	CodeEmptyParentheses      Code = "F1005"
	CodeInvalidOperatorArity  Code = "F1006"
	CodeTooDeeplyNested       Code = "F1007"
	CodeMissingRootNode       Code = "F1008"
	CodeMissingOperatorNode   Code = "F1009"
	CodeInvalidListReference  Code = "F1010"
	CodeInvalidListItem       Code = "F1011"

	// Error: recorded always; aborts in strict mode, best-effort corrected
	// otherwise.
	CodeFieldUnsupported        Code = "E2001"
	CodeFieldContradiction      Code = "E2002"
	CodeInvalidProximityUse     Code = "E2003"
	CodeProximityDistanceTooBig Code = "E2004"

	// Warning: recorded always, never aborts.
	CodeOperatorCapitalization  Code = "W3001"
	CodeImplicitPrecedence      Code = "W3002"
	CodeImplicitProximity       Code = "W3003"
	CodeRedundantTerm           Code = "W3004"
	CodeUnnecessaryParentheses  Code = "W3005"
	CodeOperatorWithField       Code = "W3006"
	CodeDateFilterInSubquery    Code = "W3007"
	CodeJournalFilterInSubquery Code = "W3008"
	CodeFieldMissing            Code = "W3009"
	CodeNonStandardQuotes       Code = "W3010"
	CodePotentialWildcard       Code = "W3011"
	CodeInvalidWildcardUse      Code = "W3012"
	CodeISBNFormatInvalid       Code = "W3013"
	CodeDOIFormatInvalid        Code = "W3014"
	CodeYearFormatInvalid       Code = "W3015"
	CodeYearSpanViolation       Code = "W3016"
	CodeInvalidCharacter        Code = "W3017"
)

type codeInfo struct {
	Label    string
	Severity Severity
}

// Catalog maps every known code to its label and severity. Tests enforce
// that codes are unique and monotonically ordered within their namespace.
var Catalog = map[Code]codeInfo{
	CodeTokenizingFailed:      {"tokenizing-failed", Fatal},
	CodeUnbalancedParentheses: {"unbalanced-parentheses", Fatal},
	CodeUnbalancedQuotes:      {"unbalanced-quotes", Fatal},
	CodeInvalidTokenSequence:  {"invalid-token-sequence", Fatal},
	CodeEmptyParentheses:      {"empty-parentheses", Fatal},
	CodeInvalidOperatorArity:  {"invalid-operator-arity", Fatal},
	CodeTooDeeplyNested:       {"too-deeply-nested", Fatal},
	CodeMissingRootNode:       {"missing-root-node", Fatal},
	CodeMissingOperatorNode:   {"missing-operator-node", Fatal},
	CodeInvalidListReference:  {"invalid-list-reference", Fatal},
	CodeInvalidListItem:       {"invalid-list-item", Fatal},

	CodeFieldUnsupported:        {"field-unsupported", Error},
	CodeFieldContradiction:      {"field-contradiction", Error},
	CodeInvalidProximityUse:     {"invalid-proximity-use", Error},
	CodeProximityDistanceTooBig: {"proximity-distance-too-large", Error},

	CodeOperatorCapitalization:  {"operator-capitalization", Warning},
	CodeImplicitPrecedence:      {"implicit-precedence", Warning},
	CodeImplicitProximity:       {"implicit-proximity-distance", Warning},
	CodeRedundantTerm:           {"redundant-term", Warning},
	CodeUnnecessaryParentheses:  {"unnecessary-parentheses", Warning},
	CodeOperatorWithField:       {"operator-with-field", Warning},
	CodeDateFilterInSubquery:    {"date-filter-in-subquery", Warning},
	CodeJournalFilterInSubquery: {"journal-filter-in-subquery", Warning},
	CodeFieldMissing:            {"field-missing", Warning},
	CodeNonStandardQuotes:       {"non-standard-quotes", Warning},
	CodePotentialWildcard:       {"potential-wildcard-use", Warning},
	CodeInvalidWildcardUse:      {"invalid-wildcard-use", Warning},
	CodeISBNFormatInvalid:       {"isbn-format-invalid", Warning},
	CodeDOIFormatInvalid:        {"doi-format-invalid", Warning},
	CodeYearFormatInvalid:       {"year-format-invalid", Warning},
	CodeYearSpanViolation:       {"year-span-violation", Warning},
	CodeInvalidCharacter:        {"invalid-character", Warning},
}

// Label returns the stable human-readable label for a code.
func (c Code) Label() string {
	return Catalog[c].Label
}

// Severity returns the severity class of the code.
func (c Code) Severity() Severity {
	return Catalog[c].Severity
}

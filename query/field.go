package query

// GenericField is a platform-independent search field. Platform grammars map
// their own field codes onto sets of generic fields; the tree linter and the
// cross-platform translator reason in terms of these.
type GenericField string

const (
	FieldAll             GenericField = "all"
	FieldTitle           GenericField = "title"
	FieldAbstract        GenericField = "abstract"
	FieldTopic           GenericField = "topic"
	FieldAuthor          GenericField = "author"
	FieldAuthorKeywords  GenericField = "author-keywords"
	FieldKeywordsPlus    GenericField = "keywords-plus"
	FieldMeshTerm        GenericField = "mesh-term"
	FieldLanguage        GenericField = "language"
	FieldYearPublication GenericField = "year-publication"
	FieldJournal         GenericField = "journal"
	FieldPublicationName GenericField = "publication-name"
	FieldDOI             GenericField = "doi"
	FieldISSNISBN        GenericField = "issn-isbn"
	FieldPublisher       GenericField = "publisher"
	FieldAffiliation     GenericField = "affiliation"
	FieldText            GenericField = "text-word"
)

// SearchField scopes a term or an operator subtree to one field of the target
// database. It is a value type: attaching it to a node always copies, so no
// two nodes share one instance.
type SearchField struct {
	Code string
	Span Span
}

func NewSearchField(code string) *SearchField {
	return &SearchField{Code: code, Span: SyntheticSpan}
}

// Copy returns an independent copy, preserving copy-on-attach semantics.
func (f *SearchField) Copy() *SearchField {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func (f *SearchField) Equal(other *SearchField) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Code == other.Code
}

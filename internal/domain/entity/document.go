package entity

type DocumentKind string

const (
	DocumentOriginal DocumentKind = "original"
	DocumentRevised  DocumentKind = "revised"
)

// Document is one PDF artifact known to a session. Originals come from
// uploads only; revised documents are tool outputs and the only kind the
// agent is allowed to delete.
type Document struct {
	ID         string
	Name       string
	URL        string
	Kind       DocumentKind
	Pages      string
	PageCount  int
	ProducedBy ToolName
}

// DocumentSet is the read/append view of the session catalogue handed to
// one agent turn. Appends make documents minted by earlier tool calls
// visible to later calls in the same turn.
type DocumentSet struct {
	docs  []Document
	added []Document
}

func NewDocumentSet(docs []Document) *DocumentSet {
	copied := make([]Document, len(docs))
	copy(copied, docs)
	return &DocumentSet{docs: copied}
}

func (s *DocumentSet) Append(docs ...Document) {
	s.docs = append(s.docs, docs...)
	s.added = append(s.added, docs...)
}

func (s *DocumentSet) Get(id string) (Document, bool) {
	for _, d := range s.docs {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

func (s *DocumentSet) All() []Document {
	result := make([]Document, len(s.docs))
	copy(result, s.docs)
	return result
}

// Added returns the documents appended during this turn, in append order.
func (s *DocumentSet) Added() []Document {
	result := make([]Document, len(s.added))
	copy(result, s.added)
	return result
}

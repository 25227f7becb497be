package hub

// SelectorKind tags the active navigation scope
type SelectorKind string

const (
	SelectService SelectorKind = "service"
	SelectProject SelectorKind = "project"
	SelectLocal   SelectorKind = "local"
)

// AllID under a service or local selector disables backend filtering
const AllID = "all"

// Selector is the single active top-level view scope
type Selector struct {
	Kind SelectorKind `json:"type"`
	ID   string       `json:"id"`
}

// DefaultSelector is the "All Files" view
func DefaultSelector() Selector {
	return Selector{Kind: SelectService, ID: AllID}
}

// IsAll reports whether the selector shows every backend
func (s Selector) IsAll() bool {
	return (s.Kind == SelectService || s.Kind == SelectLocal) && s.ID == AllID
}

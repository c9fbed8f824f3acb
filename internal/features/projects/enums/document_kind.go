package projects_enums

import "strings"

type DocumentKind string

const (
	DocumentKindDiagram  DocumentKind = "DIAGRAM"
	DocumentKindMarkdown DocumentKind = "MARKDOWN"
)

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindDiagram, DocumentKindMarkdown:
		return true
	default:
		return false
	}
}

// ParseDocumentKind accepts the kind in any case, as it appears in URLs
func ParseDocumentKind(raw string) (DocumentKind, bool) {
	kind := DocumentKind(strings.ToUpper(raw))
	return kind, kind.IsValid()
}

package collaborators_enums

type CollaboratorRole string

const (
	CollaboratorRoleEditor    CollaboratorRole = "EDITOR"
	CollaboratorRoleCommenter CollaboratorRole = "COMMENTER"
	CollaboratorRoleViewer    CollaboratorRole = "VIEWER"
	// CollaboratorRoleOwner is never stored, it only marks the owner entry in listings
	CollaboratorRoleOwner CollaboratorRole = "OWNER"
)

// IsValid reports whether the role can be assigned to a collaborator row
func (r CollaboratorRole) IsValid() bool {
	switch r {
	case CollaboratorRoleEditor, CollaboratorRoleCommenter, CollaboratorRoleViewer:
		return true
	default:
		return false
	}
}

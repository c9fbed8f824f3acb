package collaborators_enums

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusRejected InviteStatus = "REJECTED"
)

// IsDecision reports whether the status is a valid answer to an invitation
func (s InviteStatus) IsDecision() bool {
	return s == InviteStatusAccepted || s == InviteStatusRejected
}

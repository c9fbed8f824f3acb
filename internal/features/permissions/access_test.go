package permissions

import (
	"errors"
	"testing"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"

	"github.com/stretchr/testify/assert"
)

func collaboratorAccess(role collaborators_enums.CollaboratorRole) *ProjectAccess {
	return &ProjectAccess{
		Level: AccessCollaborator,
		Collaborator: &collaborators_models.ProjectCollaborator{
			Role:         role,
			InviteStatus: collaborators_enums.InviteStatusAccepted,
		},
	}
}

func Test_ProjectAccess_Capabilities(t *testing.T) {
	testCases := []struct {
		name         string
		access       *ProjectAccess
		canRead      bool
		canComment   bool
		canEdit      bool
		canResolve   bool
		isOwner      bool
		expectedRole collaborators_enums.CollaboratorRole
	}{
		{
			name:         "owner",
			access:       &ProjectAccess{Level: AccessOwner},
			canRead:      true,
			canComment:   true,
			canEdit:      true,
			canResolve:   true,
			isOwner:      true,
			expectedRole: collaborators_enums.CollaboratorRoleOwner,
		},
		{
			name:         "editor",
			access:       collaboratorAccess(collaborators_enums.CollaboratorRoleEditor),
			canRead:      true,
			canComment:   true,
			canEdit:      true,
			canResolve:   true,
			expectedRole: collaborators_enums.CollaboratorRoleEditor,
		},
		{
			name:         "commenter",
			access:       collaboratorAccess(collaborators_enums.CollaboratorRoleCommenter),
			canRead:      true,
			canComment:   true,
			expectedRole: collaborators_enums.CollaboratorRoleCommenter,
		},
		{
			name:         "viewer",
			access:       collaboratorAccess(collaborators_enums.CollaboratorRoleViewer),
			canRead:      true,
			expectedRole: collaborators_enums.CollaboratorRoleViewer,
		},
		{
			name:    "public access to shared project",
			access:  &ProjectAccess{Level: AccessPublic},
			canRead: true,
		},
		{
			name:   "no access",
			access: &ProjectAccess{Level: AccessNone},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.canRead, tc.access.CanRead())
			assert.Equal(t, tc.canComment, tc.access.CanComment())
			assert.Equal(t, tc.canEdit, tc.access.CanEdit())
			assert.Equal(t, tc.canResolve, tc.access.CanResolveComments())
			assert.Equal(t, tc.isOwner, tc.access.IsOwner())
			assert.Equal(t, tc.expectedRole, tc.access.Role())
		})
	}
}

func Test_RequireRead_WithoutAccess_ReturnsForbidden(t *testing.T) {
	err := (&ProjectAccess{Level: AccessNone}).RequireRead()

	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	assert.NoError(t, (&ProjectAccess{Level: AccessPublic}).RequireRead())
}

func Test_RequireOwner_ForCollaborator_ReturnsForbiddenWithMessage(t *testing.T) {
	err := collaboratorAccess(collaborators_enums.CollaboratorRoleEditor).RequireOwner("owners only")

	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	assert.EqualError(t, err, "owners only")
}

package authz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleOwner.HasAtLeast(RoleOwner))
	assert.True(t, RoleOwner.HasAtLeast(RoleWriter))
	assert.True(t, RoleOwner.HasAtLeast(RoleReader))

	assert.False(t, RoleWriter.HasAtLeast(RoleOwner))
	assert.True(t, RoleWriter.HasAtLeast(RoleWriter))
	assert.True(t, RoleWriter.HasAtLeast(RoleReader))

	assert.False(t, RoleReader.HasAtLeast(RoleOwner))
	assert.False(t, RoleReader.HasAtLeast(RoleWriter))
	assert.True(t, RoleReader.HasAtLeast(RoleReader))

	var none Role
	assert.False(t, none.HasAtLeast(RoleReader))
}

func TestRoleJSONRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleOwner, RoleWriter, RoleReader} {
		data, err := json.Marshal(role)
		require.NoError(t, err)

		var parsed Role
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, role, parsed)
	}

	var bad Role
	assert.Error(t, json.Unmarshal([]byte(`"admin"`), &bad))

	_, err := json.Marshal(Role(9))
	assert.Error(t, err)
}

func TestAuthorizeNonParticipant(t *testing.T) {
	for _, kind := range []Kind{KindBoard, KindCategory, KindGoal, KindComment} {
		for _, action := range []Action{ActionView, ActionCreateChild, ActionUpdate, ActionDelete, ActionManageRoster} {
			err := Authorize(kind, action, Subject{})
			assert.ErrorIs(t, err, ErrNotParticipant, "kind=%d action=%d", kind, action)
		}
	}
}

func TestAuthorizeView(t *testing.T) {
	for _, role := range []Role{RoleOwner, RoleWriter, RoleReader} {
		for _, kind := range []Kind{KindBoard, KindCategory, KindGoal, KindComment} {
			assert.NoError(t, Authorize(kind, ActionView, Subject{Role: role}))
		}
	}
}

func TestAuthorizeBoard(t *testing.T) {
	assert.NoError(t, Authorize(KindBoard, ActionUpdate, Subject{Role: RoleOwner}))
	assert.NoError(t, Authorize(KindBoard, ActionUpdate, Subject{Role: RoleWriter}))
	assert.ErrorIs(t, Authorize(KindBoard, ActionUpdate, Subject{Role: RoleReader}), ErrInsufficientRole)

	assert.NoError(t, Authorize(KindBoard, ActionDelete, Subject{Role: RoleOwner}))
	assert.ErrorIs(t, Authorize(KindBoard, ActionDelete, Subject{Role: RoleWriter}), ErrInsufficientRole)
	assert.ErrorIs(t, Authorize(KindBoard, ActionDelete, Subject{Role: RoleReader}), ErrInsufficientRole)

	assert.NoError(t, Authorize(KindBoard, ActionManageRoster, Subject{Role: RoleOwner}))
	assert.ErrorIs(t, Authorize(KindBoard, ActionManageRoster, Subject{Role: RoleWriter}), ErrInsufficientRole)
}

func TestAuthorizeContent(t *testing.T) {
	for _, kind := range []Kind{KindCategory, KindGoal} {
		for _, action := range []Action{ActionCreateChild, ActionUpdate, ActionDelete} {
			assert.NoError(t, Authorize(kind, action, Subject{Role: RoleOwner}))
			assert.NoError(t, Authorize(kind, action, Subject{Role: RoleWriter}))
			assert.ErrorIs(t, Authorize(kind, action, Subject{Role: RoleReader}), ErrInsufficientRole)
		}
	}
}

// A writer who did not author a comment cannot touch it; the author can,
// even as a mere reader.
func TestAuthorizeCommentAuthorExclusivity(t *testing.T) {
	for _, role := range []Role{RoleOwner, RoleWriter, RoleReader} {
		assert.ErrorIs(t, Authorize(KindComment, ActionUpdate, Subject{Role: role}), ErrNotAuthor)
		assert.ErrorIs(t, Authorize(KindComment, ActionDelete, Subject{Role: role}), ErrNotAuthor)

		assert.NoError(t, Authorize(KindComment, ActionUpdate, Subject{Role: role, IsAuthor: true}))
		assert.NoError(t, Authorize(KindComment, ActionDelete, Subject{Role: role, IsAuthor: true}))
	}

	assert.NoError(t, Authorize(KindComment, ActionCreateChild, Subject{Role: RoleWriter}))
	assert.ErrorIs(t, Authorize(KindComment, ActionCreateChild, Subject{Role: RoleReader}), ErrInsufficientRole)
}

// Granting writer on the same board must allow everything reader was
// denied, except board delete and roster management.
func TestAuthorizationMonotonicity(t *testing.T) {
	kinds := []Kind{KindBoard, KindCategory, KindGoal}
	actions := []Action{ActionView, ActionCreateChild, ActionUpdate, ActionDelete, ActionManageRoster}

	for _, kind := range kinds {
		for _, action := range actions {
			if action == ActionManageRoster && kind != KindBoard {
				continue
			}
			deniedAsReader := Authorize(kind, action, Subject{Role: RoleReader}) != nil
			if !deniedAsReader {
				continue
			}
			ownerOnly := kind == KindBoard && (action == ActionDelete || action == ActionManageRoster)
			if ownerOnly {
				assert.Error(t, Authorize(kind, action, Subject{Role: RoleWriter}))
				continue
			}
			if kind == KindBoard && action == ActionCreateChild {
				// boards have no parent to create under
				continue
			}
			assert.NoError(t, Authorize(kind, action, Subject{Role: RoleWriter}),
				"kind=%d action=%d", kind, action)
		}
	}
}

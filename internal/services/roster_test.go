package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"gorm.io/gorm"
)

func rosterRows(t *testing.T, db *gorm.DB, boardID uuid.UUID) map[uuid.UUID]authz.Role {
	t.Helper()
	var rows []models.BoardParticipant
	require.NoError(t, db.Where("board_id = ?", boardID).Find(&rows).Error)
	byUser := make(map[uuid.UUID]authz.Role, len(rows))
	for _, row := range rows {
		byUser[row.UserID] = row.Role
	}
	return byUser
}

func TestReplaceRosterAddAndClear(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	xavier := createUser(t, db, "xavier")

	board, err := CreateBoard(db, alice.ID, "shared")
	require.NoError(t, err)

	err = ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: xavier.ID, Role: authz.RoleWriter},
	})
	require.NoError(t, err)

	byUser := rosterRows(t, db, board.ID)
	assert.Len(t, byUser, 2)
	assert.Equal(t, authz.RoleOwner, byUser[alice.ID])
	assert.Equal(t, authz.RoleWriter, byUser[xavier.ID])

	// Empty roster clears everyone but the owner.
	require.NoError(t, ReplaceRoster(db, board.ID, alice.ID, nil, nil))

	byUser = rosterRows(t, db, board.ID)
	assert.Len(t, byUser, 1)
	assert.Equal(t, authz.RoleOwner, byUser[alice.ID])
	assert.EqualValues(t, 1, ownerCount(t, db, board.ID))
}

func TestReplaceRosterChangesRole(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	board, err := CreateBoard(db, alice.ID, "shared")
	require.NoError(t, err)

	require.NoError(t, ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: bob.ID, Role: authz.RoleReader},
	}))
	require.NoError(t, ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: bob.ID, Role: authz.RoleWriter},
	}))

	byUser := rosterRows(t, db, board.ID)
	assert.Len(t, byUser, 2)
	assert.Equal(t, authz.RoleWriter, byUser[bob.ID])
}

// Including the acting owner in the roster is rejected before any write.
func TestReplaceRosterRejectsOwnerInRoster(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	board, err := CreateBoard(db, alice.ID, "shared")
	require.NoError(t, err)
	require.NoError(t, ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: bob.ID, Role: authz.RoleReader},
	}))

	err = ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: alice.ID, Role: authz.RoleWriter},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Membership unchanged.
	byUser := rosterRows(t, db, board.ID)
	assert.Len(t, byUser, 2)
	assert.Equal(t, authz.RoleOwner, byUser[alice.ID])
	assert.Equal(t, authz.RoleReader, byUser[bob.ID])
}

func TestReplaceRosterRejectsOwnerRole(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	board, err := CreateBoard(db, alice.ID, "shared")
	require.NoError(t, err)

	err = ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: bob.ID, Role: authz.RoleOwner},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.EqualValues(t, 1, ownerCount(t, db, board.ID))
}

func TestReplaceRosterRejectsUnknownUser(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")

	board, err := CreateBoard(db, alice.ID, "shared")
	require.NoError(t, err)

	err = ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: uuid.New(), Role: authz.RoleReader},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestReplaceRosterRejectsDuplicateUser(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	board, err := CreateBoard(db, alice.ID, "shared")
	require.NoError(t, err)

	err = ReplaceRoster(db, board.ID, alice.ID, nil, []models.RosterEntry{
		{UserID: bob.ID, Role: authz.RoleReader},
		{UserID: bob.ID, Role: authz.RoleWriter},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

// Title and roster commit together.
func TestReplaceRosterWithTitle(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	board, err := CreateBoard(db, alice.ID, "old title")
	require.NoError(t, err)

	title := "new title"
	require.NoError(t, ReplaceRoster(db, board.ID, alice.ID, &title, []models.RosterEntry{
		{UserID: bob.ID, Role: authz.RoleWriter},
	}))

	var reloaded models.Board
	require.NoError(t, db.First(&reloaded, "id = ?", board.ID).Error)
	assert.Equal(t, "new title", reloaded.Title)
	assert.Len(t, rosterRows(t, db, board.ID), 2)
}

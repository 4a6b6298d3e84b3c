package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"github.com/teamgoals/teamgoals-api/internal/models"
)

// Creating a board grants the creator the sole owner membership.
func TestCreateBoardGrantsOwner(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")

	board, err := CreateBoard(db, alice.ID, "Q3 goals")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, board.ID)
	assert.False(t, board.IsDeleted)

	role, ok, err := GetRole(db, board.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, authz.RoleOwner, role)

	assert.EqualValues(t, 1, ownerCount(t, db, board.ID))
}

func TestGetRoleNonParticipant(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	mallory := createUser(t, db, "mallory")

	board, err := CreateBoard(db, alice.ID, "private")
	require.NoError(t, err)

	role, ok, err := GetRole(db, board.ID, mallory.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, role)

	participant, err := IsParticipant(db, board.ID, mallory.ID)
	require.NoError(t, err)
	assert.False(t, participant)
}

func TestGrantOwnerTwiceFails(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	board, err := CreateBoard(db, alice.ID, "board")
	require.NoError(t, err)

	err = GrantOwner(db, board.ID, bob.ID)
	assert.ErrorIs(t, err, ErrConsistency)
	assert.EqualValues(t, 1, ownerCount(t, db, board.ID))
}

func TestGetRoleDistinguishesBoards(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	boardA, err := CreateBoard(db, alice.ID, "a")
	require.NoError(t, err)
	boardB, err := CreateBoard(db, bob.ID, "b")
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.BoardParticipant{
		BoardID: boardB.ID,
		UserID:  alice.ID,
		Role:    authz.RoleReader,
	}).Error)

	role, _, err := GetRole(db, boardA.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleOwner, role)

	role, _, err = GetRole(db, boardB.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleReader, role)
}

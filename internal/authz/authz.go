// Package authz decides whether a user may act on a board-scoped entity.
// It is a pure policy table: callers resolve the entity's board and the
// user's role there, then ask for a decision. All persistence stays in
// the services layer.
package authz

import "errors"

// Denial reasons. The handler layer maps ErrNotParticipant to a 404 so
// board existence is not leaked to outsiders; the other two map to 403.
var (
	ErrNotParticipant   = errors.New("not a participant of the board")
	ErrInsufficientRole = errors.New("role does not permit this action")
	ErrNotAuthor        = errors.New("only the author may modify this")
)

type Kind int

const (
	KindBoard Kind = iota
	KindCategory
	KindGoal
	KindComment
)

type Action int

const (
	// ActionView reads an entity.
	ActionView Action = iota
	// ActionCreateChild creates an entity of the given kind under its
	// parent (a category under a board, a goal under a category, a
	// comment under a goal).
	ActionCreateChild
	ActionUpdate
	ActionDelete
	// ActionManageRoster replaces a board's participant list.
	ActionManageRoster
)

// Subject describes the acting user relative to the target entity's board.
type Subject struct {
	// Role on the board; zero when the user is not a participant.
	Role Role
	// IsAuthor is set when the user authored the target comment.
	IsAuthor bool
}

// Authorize applies the policy table. A nil return means allow; otherwise
// one of the denial errors above is returned.
func Authorize(kind Kind, action Action, sub Subject) error {
	if !sub.Role.Valid() {
		return ErrNotParticipant
	}

	switch action {
	case ActionView:
		// Any participant, reader included.
		return nil

	case ActionCreateChild:
		if kind == KindBoard {
			// Boards have no parent; creation is open to any
			// authenticated user and never reaches here.
			return ErrInsufficientRole
		}
		if !sub.Role.HasAtLeast(RoleWriter) {
			return ErrInsufficientRole
		}
		return nil

	case ActionUpdate, ActionDelete:
		switch kind {
		case KindComment:
			// Author-only, whatever the board role. Even the board
			// owner cannot touch somebody else's comment.
			if !sub.IsAuthor {
				return ErrNotAuthor
			}
			return nil
		case KindBoard:
			threshold := RoleWriter
			if action == ActionDelete {
				threshold = RoleOwner
			}
			if !sub.Role.HasAtLeast(threshold) {
				return ErrInsufficientRole
			}
			return nil
		default:
			if !sub.Role.HasAtLeast(RoleWriter) {
				return ErrInsufficientRole
			}
			return nil
		}

	case ActionManageRoster:
		if kind != KindBoard || !sub.Role.HasAtLeast(RoleOwner) {
			return ErrInsufficientRole
		}
		return nil
	}

	return ErrInsufficientRole
}

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalStatus is stored as a small int and rendered as its name in JSON.
// Archived is terminal and doubles as the goal's delete tombstone.
type GoalStatus int16

const (
	StatusToDo       GoalStatus = 1
	StatusInProgress GoalStatus = 2
	StatusDone       GoalStatus = 3
	StatusArchived   GoalStatus = 4
)

var statusNames = map[GoalStatus]string{
	StatusToDo:       "to_do",
	StatusInProgress: "in_progress",
	StatusDone:       "done",
	StatusArchived:   "archived",
}

type GoalPriority int16

const (
	PriorityLow      GoalPriority = 1
	PriorityMedium   GoalPriority = 2
	PriorityHigh     GoalPriority = 3
	PriorityCritical GoalPriority = 4
)

var priorityNames = map[GoalPriority]string{
	PriorityLow:      "low",
	PriorityMedium:   "medium",
	PriorityHigh:     "high",
	PriorityCritical: "critical",
}

func (s GoalStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s GoalStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int16(s))
}

func (s GoalStatus) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid goal status %d", int16(s))
	}
	return json.Marshal(name)
}

func (s *GoalStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for v, n := range statusNames {
		if n == name {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown goal status %q", name)
}

func (p GoalPriority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p GoalPriority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int16(p))
}

func (p GoalPriority) MarshalJSON() ([]byte, error) {
	name, ok := priorityNames[p]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid goal priority %d", int16(p))
	}
	return json.Marshal(name)
}

func (p *GoalPriority) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for v, n := range priorityNames {
		if n == name {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown goal priority %q", name)
}

type Goal struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID    `json:"categoryId" gorm:"type:uuid;index;not null"`
	UserID      uuid.UUID    `json:"userId" gorm:"type:uuid;not null"`
	Title       string       `json:"title" gorm:"not null"`
	Description *string      `json:"description"`
	Status      GoalStatus   `json:"status" gorm:"not null;default:1"`
	Priority    GoalPriority `json:"priority" gorm:"not null;default:2"`
	DueDate     *time.Time   `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type CreateGoalRequest struct {
	CategoryID  uuid.UUID     `json:"category" validate:"required"`
	Title       string        `json:"title" validate:"required,max=255"`
	Description *string       `json:"description"`
	Status      *GoalStatus   `json:"status"`
	Priority    *GoalPriority `json:"priority"`
	DueDate     *time.Time    `json:"dueDate"`
}

type UpdateGoalRequest struct {
	Title       *string       `json:"title" validate:"omitempty,max=255"`
	Description *string       `json:"description"`
	Status      *GoalStatus   `json:"status"`
	Priority    *GoalPriority `json:"priority"`
	DueDate     *time.Time    `json:"dueDate"`
}

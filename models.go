package todogo

import (
	"time"
)

type Task struct {
	ID          int
	Name        string
	Priority    TaskPriority
	DueDate     time.Time
	CreatedAt   time.Time
	CompletedAt time.Time
	Deleted     bool
}

func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

func (t Task) IsCompleted() bool {
	return !t.CompletedAt.IsZero()
}

// IsActive reports whether the task is incomplete and not soft-deleted.
func (t Task) IsActive() bool {
	return !t.IsCompleted() && !t.Deleted
}

type TaskPriority int

const (
	PriorityLow TaskPriority = iota + 1
	PriorityMedium
	PriorityHigh
)

func (p TaskPriority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

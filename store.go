package todogo

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// TaskStore owns the task collection for the process. It loads the
// persisted collection once before first use and rewrites the whole
// collection on every mutation. A mutex serializes in-process callers;
// concurrent processes still race on the backing file and the last
// writer wins.
type TaskStore struct {
	codec Codec
	l     Logger

	mu     sync.Mutex
	tasks  []Task
	loaded bool
}

func NewTaskStore(codec Codec, logger Logger) *TaskStore {
	return &TaskStore{
		codec: codec,
		l:     logger,
	}
}

// Load reads the persisted collection if it has not been read yet.
// Every operation calls this, so explicit use is only needed to surface
// a corrupt store up front.
func (s *TaskStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load assumes the caller holds s.mu.
func (s *TaskStore) load() error {
	if s.loaded {
		return nil
	}
	tasks, err := s.codec.Load()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = tasks
	s.loaded = true
	s.l.Debug("loaded tasks", "count", len(tasks))
	return nil
}

func (s *TaskStore) persist() error {
	if err := s.codec.Save(s.tasks); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// Add creates a task and persists the collection. The caller validates
// the name; an unset priority defaults to PriorityLow. Ids are assigned
// count+1 at creation, so an id freed by a hard delete may be reused.
func (s *TaskStore) Add(name string, priority TaskPriority, dueDate time.Time) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return Task{}, err
	}
	if priority == 0 {
		priority = PriorityLow
	}

	t := Task{
		ID:        len(s.tasks) + 1,
		Name:      name,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: time.Now(),
	}
	s.tasks = append(s.tasks, t)
	if err := s.persist(); err != nil {
		return Task{}, err
	}
	s.l.Debug("created task", "id", t.ID, "name", t.Name)
	return t, nil
}

// Delete hard-removes a task from the collection. An unknown id is a
// no-op that still persists the unchanged collection.
func (s *TaskStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool {
		return t.ID == id
	})
	return s.persist()
}

// MarkDeleted soft-deletes a task, keeping the record. Returns
// ErrNotFound without persisting if the id is unknown.
func (s *TaskStore) MarkDeleted(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Deleted = true
			return s.persist()
		}
	}
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// MarkCompleted stamps CompletedAt and persists. Returns ErrNotFound
// without persisting if the id is unknown. Re-completing refreshes the
// stamp.
func (s *TaskStore) MarkCompleted(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].CompletedAt = time.Now()
			return s.persist()
		}
	}
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// ListActive returns incomplete, non-deleted tasks sorted by due date
// descending. Tasks without a due date rank last; within an equal due
// date, higher priority first.
func (s *TaskStore) ListActive() ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	var active []Task
	for _, t := range s.tasks {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	slices.SortStableFunc(active, compareListOrder)
	return active, nil
}

// Query returns incomplete tasks whose name contains any keyword as a
// case-insensitive substring, in insertion order. Soft-deleted tasks
// are still returned; only completion filters here.
func (s *TaskStore) Query(keywords []string) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	var matches []Task
	for _, t := range s.tasks {
		if t.IsCompleted() {
			continue
		}
		name := strings.ToLower(t.Name)
		for _, kw := range keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				matches = append(matches, t)
				break
			}
		}
	}
	return matches, nil
}

// Report returns every task, completed and deleted included, sorted by
// due date ascending. Tasks without a due date rank last; within an
// equal due date, higher priority first.
func (s *TaskStore) Report() ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	all := slices.Clone(s.tasks)
	slices.SortStableFunc(all, compareReportOrder)
	return all, nil
}

// GetByID returns ErrNotFound for an unknown id.
func (s *TaskStore) GetByID(id int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return Task{}, err
	}
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// compareListOrder sorts later due dates first. The zero time stands in
// for "no due date", so undated tasks sink to the end.
func compareListOrder(a, b Task) int {
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return -c
	}
	return int(b.Priority - a.Priority)
}

// compareReportOrder sorts earlier due dates first with undated tasks
// last, which is not the reverse of compareListOrder.
func compareReportOrder(a, b Task) int {
	switch {
	case a.HasDueDate() && b.HasDueDate():
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
	case a.HasDueDate():
		return -1
	case b.HasDueDate():
		return 1
	}
	return int(b.Priority - a.Priority)
}

// Package jsonfile implements todogo's Codec over a single hidden JSON
// file in the working directory.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/benjamonnguyen/todogo"
)

// FileName is fixed; the store is private to the directory it lives in.
const FileName = ".todo.json"

const storeVersion = 1

// storeFile is the versioned envelope written to disk. Unknown fields
// are ignored on decode so older binaries keep reading newer files.
type storeFile struct {
	Version int          `json:"version"`
	Tasks   []taskRecord `json:"tasks"`
}

type taskRecord struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Priority    int     `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	CompletedAt *int64  `json:"completed_at,omitempty"`
	Deleted     bool    `json:"deleted"`
}

const dueDateLayout = "2006-01-02"

type codec struct {
	path string
	l    todogo.Logger
}

var _ todogo.Codec = (*codec)(nil)

func NewCodec(logger todogo.Logger) todogo.Codec {
	return &codec{
		path: FileName,
		l:    logger,
	}
}

// Load reads the whole collection. A missing file yields an empty
// collection; a file that exists but does not decode is reported as
// ErrCorruptStore and left untouched.
func (c *codec) Load() ([]todogo.Task, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.l.Debug("no store file, starting empty", "path", c.path)
			return nil, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", todogo.ErrCorruptStore, c.path, err)
	}
	if f.Version != storeVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", todogo.ErrCorruptStore, c.path, f.Version)
	}

	tasks := make([]todogo.Task, 0, len(f.Tasks))
	for _, rec := range f.Tasks {
		t, err := mapToTask(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", todogo.ErrCorruptStore, c.path, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save rewrites the whole collection. The write goes to a temp file in
// the same directory and is renamed into place, which is atomic enough
// for single-process use.
func (c *codec) Save(tasks []todogo.Task) error {
	f := storeFile{
		Version: storeVersion,
		Tasks:   make([]taskRecord, 0, len(tasks)),
	}
	for _, t := range tasks {
		f.Tasks = append(f.Tasks, mapToTaskRecord(t))
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store file: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	c.l.Debug("saved tasks", "path", c.path, "count", len(tasks))
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}

func mapToTaskRecord(t todogo.Task) taskRecord {
	rec := taskRecord{
		ID:        t.ID,
		Name:      t.Name,
		Priority:  int(t.Priority),
		CreatedAt: t.CreatedAt.Unix(),
		Deleted:   t.Deleted,
	}
	if t.HasDueDate() {
		due := t.DueDate.Format(dueDateLayout)
		rec.DueDate = &due
	}
	if t.IsCompleted() {
		completed := t.CompletedAt.Unix()
		rec.CompletedAt = &completed
	}
	return rec
}

func mapToTask(rec taskRecord) (todogo.Task, error) {
	t := todogo.Task{
		ID:        rec.ID,
		Name:      rec.Name,
		Priority:  todogo.TaskPriority(rec.Priority),
		CreatedAt: time.Unix(rec.CreatedAt, 0).Local(),
		Deleted:   rec.Deleted,
	}
	if rec.DueDate != nil {
		due, err := time.ParseInLocation(dueDateLayout, *rec.DueDate, time.Local)
		if err != nil {
			return todogo.Task{}, fmt.Errorf("bad due_date %q", *rec.DueDate)
		}
		t.DueDate = due
	}
	if rec.CompletedAt != nil {
		t.CompletedAt = time.Unix(*rec.CompletedAt, 0).Local()
	}
	return t, nil
}

// Package task defines checklist tasks and the views derived from them.
package task

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/collection"
)

// Key is the storage key of the task collection.
const Key = "tasks"

// Category groups tasks.
type Category string

const (
	Work     Category = "Work"
	Personal Category = "Personal"
	Study    Category = "Study"
	Health   Category = "Health"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Work, Personal, Study, Health}
}

// ParseCategory matches raw case-insensitively against the known categories.
func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("task: unknown category %q", raw)
}

// Task is one checklist item.
type Task struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    Category      `json:"category"`
	DueDate     calendar.Date `json:"dueDate"`
	Completed   bool          `json:"completed"`
}

// New returns an incomplete task without identifier.
func New(title string, category Category) Task {
	return Task{Title: title, Category: category}
}

// Validate reports why t cannot be stored.
func Validate(t Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("task: title required")
	}
	c, err := ParseCategory(string(t.Category))
	if err != nil {
		return err
	}
	if c != t.Category {
		return fmt.Errorf("task: category %q must be spelled %q", t.Category, c)
	}
	return nil
}

// Schema describes tasks to a collection store. New tasks go first.
func Schema() collection.Schema[Task] {
	return collection.Schema[Task]{
		Key:       Key,
		ID:        func(t Task) string { return t.ID },
		WithID:    func(t Task, id string) Task { t.ID = id; return t },
		Validate:  Validate,
		Placement: collection.Prepend,
	}
}

// Patch carries the fields of an edit. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Category    *Category
	DueDate     *calendar.Date
	Completed   *bool
}

// Apply merges p into t.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Toggle flips the completion state.
func Toggle(t Task) Task {
	t.Completed = !t.Completed
	return t
}

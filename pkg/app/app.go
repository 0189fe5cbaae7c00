// Package app wires storage and the domain collections together so the CLI
// and tests share one entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/finance"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timesheet"
)

// ErrNotFound is returned when an identifier matches no record. The store
// itself was left untouched.
var ErrNotFound = errors.New("app: record not found")

// Options tune how a Service is opened.
type Options struct {
	// Samples seeds collections that were never saved with demo records.
	Samples bool
	// Warn receives storage read and write failures. Nil discards them.
	Warn func(error)
}

// Service owns one store per domain over a shared storage.
type Service struct {
	Storage      store.Storage
	Tasks        *collection.Store[task.Task]
	Transactions *collection.Store[finance.Transaction]
	Time         *timesheet.Tracker
}

// New builds the stores over storage without loading them.
func New(storage store.Storage, opts Options) *Service {
	warn := opts.Warn
	if warn == nil {
		warn = func(error) {}
	}
	var (
		taskSeed  []task.Task
		txSeed    []finance.Transaction
		entrySeed []timesheet.Entry
	)
	if opts.Samples {
		taskSeed = task.Samples()
		txSeed = finance.Samples()
		entrySeed = timesheet.Samples()
	}
	entries := collection.New(storage, timesheet.Schema(),
		collection.WithSeed(entrySeed), collection.WithWarn[timesheet.Entry](warn))
	return &Service{
		Storage: storage,
		Tasks: collection.New(storage, task.Schema(),
			collection.WithSeed(taskSeed), collection.WithWarn[task.Task](warn)),
		Transactions: collection.New(storage, finance.Schema(),
			collection.WithSeed(txSeed), collection.WithWarn[finance.Transaction](warn)),
		Time: timesheet.NewTracker(storage, entries, warn),
	}
}

// Open builds the service and loads every collection once. Load failures
// are warnings: the affected collection keeps its seed and the others load
// normally. Only a cancelled context is returned as an error.
func Open(ctx context.Context, storage store.Storage, opts Options) (*Service, error) {
	s := New(storage, opts)
	loaders := []func(context.Context) error{
		s.Tasks.Load,
		s.Transactions.Load,
		s.Time.Entries().Load,
		s.Time.Load,
	}
	for _, load := range loaders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := load(ctx); err != nil && !collection.IsWarning(err) {
			return nil, err
		}
	}
	return s, nil
}

// Close releases the storage.
func (s *Service) Close() error {
	if s.Storage == nil {
		return nil
	}
	return s.Storage.Close()
}

// Keys lists the keys present in storage.
func (s *Service) Keys(ctx context.Context) ([]string, error) {
	if s.Storage == nil {
		return nil, errors.New("app: no storage configured")
	}
	return s.Storage.Keys(ctx)
}

// AddTask creates an incomplete task.
func (s *Service) AddTask(ctx context.Context, title, description string, category task.Category, due calendar.Date) (task.Task, error) {
	t := task.New(title, category)
	t.Description = description
	t.DueDate = due
	return s.Tasks.Add(ctx, t)
}

// Task looks up a task by identifier.
func (s *Service) Task(id string) (task.Task, error) {
	t, ok := s.Tasks.Get(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	return t, nil
}

// ToggleTask flips the completion state of the task id.
func (s *Service) ToggleTask(ctx context.Context, id string) (task.Task, error) {
	return s.updateTask(ctx, id, task.Toggle)
}

// EditTask applies patch to the task id.
func (s *Service) EditTask(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	return s.updateTask(ctx, id, patch.Apply)
}

func (s *Service) updateTask(ctx context.Context, id string, fn func(task.Task) task.Task) (task.Task, error) {
	t, ok, err := s.Tasks.Update(ctx, id, fn)
	if !ok && err == nil {
		return t, fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	return t, err
}

// RemoveTask deletes the task id.
func (s *Service) RemoveTask(ctx context.Context, id string) error {
	ok, err := s.Tasks.Remove(ctx, id)
	return removed("task", id, ok, err)
}

// AddTransaction records an income or expense.
func (s *Service) AddTransaction(ctx context.Context, title string, amount decimal.Decimal, date calendar.Date, category string, kind finance.Kind) (finance.Transaction, error) {
	return s.Transactions.Add(ctx, finance.Transaction{
		Title:    title,
		Amount:   amount,
		Date:     date,
		Category: category,
		Kind:     kind,
	})
}

// EditTransaction applies patch to the transaction id.
func (s *Service) EditTransaction(ctx context.Context, id string, patch finance.Patch) (finance.Transaction, error) {
	tx, ok, err := s.Transactions.Update(ctx, id, patch.Apply)
	if !ok && err == nil {
		return tx, fmt.Errorf("%w: transaction %q", ErrNotFound, id)
	}
	return tx, err
}

// RemoveTransaction deletes the transaction id.
func (s *Service) RemoveTransaction(ctx context.Context, id string) error {
	ok, err := s.Transactions.Remove(ctx, id)
	return removed("transaction", id, ok, err)
}

// CheckIn opens a time-tracking session at at.
func (s *Service) CheckIn(ctx context.Context, at time.Time) (timesheet.Session, error) {
	return s.Time.CheckIn(ctx, at)
}

// CheckOut closes the open session at at and records the entry.
func (s *Service) CheckOut(ctx context.Context, at time.Time) (timesheet.Entry, error) {
	return s.Time.CheckOut(ctx, at)
}

// AddEntry records a completed interval directly.
func (s *Service) AddEntry(ctx context.Context, date, checkIn, checkOut string) (timesheet.Entry, error) {
	e, err := timesheet.NewEntry(date, checkIn, checkOut)
	if err != nil {
		return timesheet.Entry{}, fmt.Errorf("%w: %w", collection.ErrValidation, err)
	}
	return s.Time.Entries().Add(ctx, e)
}

// RemoveEntry deletes the time entry id.
func (s *Service) RemoveEntry(ctx context.Context, id string) error {
	ok, err := s.Time.Entries().Remove(ctx, id)
	return removed("time entry", id, ok, err)
}

func removed(kind, id string, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
	}
	return nil
}

package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/store"
)

func newTracker(t *testing.T, s store.Storage) *Tracker {
	t.Helper()
	entries := collection.New(s, Schema(), collection.WithWarn[Entry](func(error) {}))
	if err := entries.Load(context.Background()); err != nil {
		t.Fatalf("load entries: %v", err)
	}
	tr := NewTracker(s, entries, nil)
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("load session: %v", err)
	}
	return tr
}

func at(hour, minute int) time.Time {
	return time.Date(2023, time.December, 15, hour, minute, 0, 0, time.Local)
}

func TestCheckInCheckOut(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	tr := newTracker(t, mem)

	if _, err := tr.CheckOut(ctx, at(17, 0)); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("expected ErrNotCheckedIn, got %v", err)
	}
	s, err := tr.CheckIn(ctx, at(8, 45))
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if s.CheckIn != "08:45 AM" || s.Date != "Dec 15" {
		t.Fatalf("unexpected session %+v", s)
	}
	if _, err := tr.CheckIn(ctx, at(9, 0)); !errors.Is(err, ErrCheckedIn) {
		t.Fatalf("expected ErrCheckedIn, got %v", err)
	}

	// A fresh tracker over the same storage sees the open session.
	again := newTracker(t, mem)
	if got, ok := again.Session(); !ok || got != s {
		t.Fatalf("session not persisted: %+v %v", got, ok)
	}

	e, err := again.CheckOut(ctx, at(18, 15))
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if e.ID == "" || e.TotalHours != 9.5 || e.CheckOut != "06:15 PM" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if _, ok := again.Session(); ok {
		t.Fatalf("session still open")
	}
	if _, err := mem.Get(ctx, SessionKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("session key not removed: %v", err)
	}

	final := newTracker(t, mem)
	list := final.Entries().List()
	if len(list) != 1 || list[0] != e {
		t.Fatalf("entry not persisted: %+v", list)
	}
}

func TestCheckOutWrapsPastMidnight(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, store.NewMemory())
	if _, err := tr.CheckIn(ctx, at(22, 0)); err != nil {
		t.Fatalf("check in: %v", err)
	}
	e, err := tr.CheckOut(ctx, at(1, 30))
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if e.TotalHours != 3.5 {
		t.Fatalf("expected 3.5, got %v", e.TotalHours)
	}
}

func TestCheckOutPrependsNewest(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	entries := collection.New(mem, Schema(), collection.WithSeed(Samples()))
	tr := NewTracker(mem, entries, nil)
	if _, err := tr.CheckIn(ctx, at(9, 0)); err != nil {
		t.Fatalf("check in: %v", err)
	}
	e, err := tr.CheckOut(ctx, at(10, 0))
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if first := entries.List()[0]; first.ID != e.ID {
		t.Fatalf("expected newest first, got %+v", first)
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, store.NewMemory())
	if err := tr.Cancel(ctx); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("expected ErrNotCheckedIn, got %v", err)
	}
	if _, err := tr.CheckIn(ctx, at(9, 0)); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if err := tr.Cancel(ctx); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := tr.Session(); ok {
		t.Fatalf("session still open")
	}
	if tr.Entries().Len() != 0 {
		t.Fatalf("cancel recorded an entry")
	}
}

func TestMalformedSessionIsDropped(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Set(ctx, SessionKey, []byte(`{"date":"Dec 15","checkIn":"soon"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	entries := collection.New(mem, Schema())
	tr := NewTracker(mem, entries, nil)
	var rerr *collection.ReadError
	if err := tr.Load(ctx); !errors.As(err, &rerr) {
		t.Fatalf("expected read error, got %v", err)
	}
	if _, ok := tr.Session(); ok {
		t.Fatalf("malformed session kept")
	}
}

type failingSet struct {
	store.Storage
}

func (failingSet) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestCheckInWriteFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	s := failingSet{Storage: store.NewMemory()}
	var warned int
	tr := NewTracker(s, collection.New[Entry](s, Schema()), func(error) { warned++ })
	_, err := tr.CheckIn(ctx, at(9, 0))
	if !collection.IsWarning(err) || warned != 1 {
		t.Fatalf("expected write warning, got %v (warned %d)", err, warned)
	}
	if _, ok := tr.Session(); !ok {
		t.Fatalf("session dropped after write failure")
	}
}

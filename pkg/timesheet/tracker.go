package timesheet

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeutil"
)

// SessionKey is the storage key of the pending check-in.
const SessionKey = "timeSession"

var (
	// ErrCheckedIn is returned by CheckIn while a session is open.
	ErrCheckedIn = errors.New("timesheet: already checked in")
	// ErrNotCheckedIn is returned by CheckOut without an open session.
	ErrNotCheckedIn = errors.New("timesheet: not checked in")
)

// Session is an open check-in waiting for its check-out.
type Session struct {
	Date    string `json:"date"`
	CheckIn string `json:"checkIn"`
}

// Elapsed returns the time worked so far when checking out at now.
func (s Session) Elapsed(now time.Time) (time.Duration, error) {
	minutes, err := timeutil.ElapsedMinutes(s.CheckIn, timeutil.FormatClock(now))
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// Tracker turns check-in/check-out pairs into entries. The open session is
// persisted so it survives between runs.
type Tracker struct {
	entries *collection.Store[Entry]
	storage store.Storage
	warn    func(error)

	mu      sync.Mutex
	session *Session
}

// NewTracker creates a tracker adding to entries and keeping its session in
// storage. warn receives storage failures; nil discards them.
func NewTracker(storage store.Storage, entries *collection.Store[Entry], warn func(error)) *Tracker {
	if warn == nil {
		warn = func(error) {}
	}
	return &Tracker{entries: entries, storage: storage, warn: warn}
}

// Entries returns the underlying entry store.
func (t *Tracker) Entries() *collection.Store[Entry] {
	return t.entries
}

// Load reads the open session. A missing key means no session; a malformed
// one is dropped and reported as a *collection.ReadError.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := t.storage.Get(ctx, SessionKey)
	if errors.Is(err, store.ErrNotFound) {
		t.session = nil
		return nil
	}
	if err == nil {
		var s Session
		if err = json.Unmarshal(data, &s); err == nil {
			if _, err = timeutil.ParseClock(s.CheckIn); err == nil {
				t.session = &s
				return nil
			}
		}
	}
	rerr := &collection.ReadError{Key: SessionKey, Err: err}
	t.warn(rerr)
	return rerr
}

// Session returns the open session.
func (t *Tracker) Session() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return Session{}, false
	}
	return *t.session, true
}

// CheckIn opens a session at at.
func (t *Tracker) CheckIn(ctx context.Context, at time.Time) (Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session != nil {
		return *t.session, ErrCheckedIn
	}
	s := Session{Date: FormatDate(at), CheckIn: timeutil.FormatClock(at)}
	t.session = &s
	return s, t.saveSession(ctx)
}

// CheckOut closes the open session at at and stores the resulting entry.
// A check-out clock time before the check-in wraps past midnight.
func (t *Tracker) CheckOut(ctx context.Context, at time.Time) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return Entry{}, ErrNotCheckedIn
	}
	e, err := NewEntry(t.session.Date, t.session.CheckIn, timeutil.FormatClock(at))
	if err != nil {
		return Entry{}, err
	}
	e, addErr := t.entries.Add(ctx, e)
	if addErr != nil && !collection.IsWarning(addErr) {
		return Entry{}, addErr
	}
	t.session = nil
	if err := t.saveSession(ctx); err != nil {
		return e, err
	}
	return e, addErr
}

// Cancel drops the open session without recording an entry.
func (t *Tracker) Cancel(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return ErrNotCheckedIn
	}
	t.session = nil
	return t.saveSession(ctx)
}

// saveSession must be called with mu held.
func (t *Tracker) saveSession(ctx context.Context) error {
	var err error
	if t.session == nil {
		err = t.storage.Remove(ctx, SessionKey)
	} else {
		var data []byte
		if data, err = json.Marshal(t.session); err == nil {
			err = t.storage.Set(ctx, SessionKey, data)
		}
	}
	if err != nil {
		werr := &collection.WriteError{Key: SessionKey, Err: err}
		t.warn(werr)
		return werr
	}
	return nil
}

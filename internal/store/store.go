// Package store owns the ordered note list. Every read and write of notes
// goes through a NoteStore, which mirrors each mutation to an optional
// Persister.
package store

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hpungsan/noten/internal/config"
	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/note"
)

// Persister mirrors the note list to durable storage.
type Persister interface {
	Save(ctx context.Context, notes []note.Note) error
	Load(ctx context.Context) ([]note.Note, error)
}

// NoteStore is the single owner of the note list.
// Operations are serialized, so a store may be shared by concurrent request
// handlers while keeping single-writer semantics.
type NoteStore struct {
	mu    sync.Mutex
	notes []note.Note

	persister Persister
	degraded  bool

	// editID is the note under edit, or "" when no edit is pending
	editID string

	now           func() time.Time
	newID         func() string
	layout        string
	timestamps    bool
	refreshOnEdit bool
	logger        *slog.Logger
}

// Option configures a NoteStore.
type Option func(*NoteStore)

// WithPersister mirrors every mutation to p.
func WithPersister(p Persister) Option {
	return func(s *NoteStore) { s.persister = p }
}

// WithClock sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the function that assigns note IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *NoteStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithTimestampLayout sets the Go time layout for note timestamps.
func WithTimestampLayout(layout string) Option {
	return func(s *NoteStore) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// WithoutTimestamps creates notes with an empty Timestamp.
func WithoutTimestamps() Option {
	return func(s *NoteStore) { s.timestamps = false }
}

// WithEditTimestamp sets the edit policy: config.EditTimestampRefresh stamps
// edited notes with the edit time; anything else preserves the creation time.
func WithEditTimestamp(policy string) Option {
	return func(s *NoteStore) { s.refreshOnEdit = policy == config.EditTimestampRefresh }
}

// WithLogger sets the logger used to report persistence degradation.
func WithLogger(l *slog.Logger) Option {
	return func(s *NoteStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig applies the timestamp settings from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *NoteStore) {
		if cfg == nil {
			return
		}
		WithTimestampLayout(cfg.TimestampLayout)(s)
		WithEditTimestamp(cfg.EditTimestamp)(s)
		if cfg.DisableTimestamps {
			s.timestamps = false
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *NoteStore {
	s := &NoteStore{
		notes:      []note.Note{},
		now:        time.Now,
		newID:      note.NewID,
		layout:     note.DefaultTimestampLayout,
		timestamps: true,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store backed by p and hydrates it from p.Load.
// If loading fails the store starts empty in memory-only mode.
func Open(ctx context.Context, p Persister, opts ...Option) *NoteStore {
	s := New(append(opts, WithPersister(p))...)
	if p == nil {
		return s
	}

	notes, err := p.Load(context.WithoutCancel(ctx))
	if err != nil {
		s.degrade("load", err)
		return s
	}
	s.notes = append(s.notes, notes...)
	return s
}

// Persistent reports whether mutations are currently mirrored to storage.
func (s *NoteStore) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persister != nil && !s.degraded
}

// Degraded reports whether persistence failed and the store fell back to
// memory-only operation for the rest of the session.
func (s *NoteStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// sync mirrors the current list. Caller must hold s.mu.
// The save ignores cancellation of ctx: a caller giving up mid-request must not
// be mistaken for an unreachable store.
func (s *NoteStore) sync(ctx context.Context) {
	if s.persister == nil || s.degraded {
		return
	}
	if err := s.persister.Save(context.WithoutCancel(ctx), s.snapshot()); err != nil {
		s.degrade("save", err)
	}
}

func (s *NoteStore) degrade(op string, err error) {
	s.degraded = true
	code := errors.ErrPersistenceUnavailable
	if nErr, ok := errors.As(err); ok {
		code = nErr.Code
	}
	s.logger.Warn("persistence disabled for this session",
		"op", op, "code", string(code), "error", err)
}

// snapshot copies the list. Caller must hold s.mu.
func (s *NoteStore) snapshot() []note.Note {
	out := make([]note.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *NoteStore) timestamp() string {
	if !s.timestamps {
		return ""
	}
	return note.FormatTimestamp(s.now(), s.layout)
}

func (s *NoteStore) valid(index int) bool {
	return index >= 0 && index < len(s.notes)
}

// indexOf returns the position of id, or -1. Caller must hold s.mu.
func (s *NoteStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

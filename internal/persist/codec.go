// Package persist mirrors the note list into a single JSON blob held by a
// key-value store.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/hpungsan/noten/internal/config"
	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/kv"
	"github.com/hpungsan/noten/internal/note"
)

// record is the persisted shape of one note.
type record struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Codec saves and loads the note list under a fixed key.
type Codec struct {
	store  kv.Store
	key    string
	newID  func() string
	logger *slog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithKey overrides the storage key (default config.DefaultStorageKey).
func WithKey(key string) Option {
	return func(c *Codec) {
		if key != "" {
			c.key = key
		}
	}
}

// WithIDGenerator sets the function used to assign IDs to legacy entries.
func WithIDGenerator(fn func() string) Option {
	return func(c *Codec) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithLogger sets the logger used for decode warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCodec creates a Codec over store.
func NewCodec(store kv.Store, opts ...Option) *Codec {
	c := &Codec{
		store:  store,
		key:    config.DefaultStorageKey,
		newID:  note.NewID,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the storage key.
func (c *Codec) Key() string {
	return c.key
}

// Save serializes notes and writes them under the codec's key.
// Store failures are reported as PERSISTENCE_UNAVAILABLE.
func (c *Codec) Save(ctx context.Context, notes []note.Note) error {
	data, err := Encode(notes)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return asUnavailable(err)
	}
	return nil
}

// Load reads the note list. A missing or unparsable blob yields an empty
// list; only a store failure returns an error.
func (c *Codec) Load(ctx context.Context) ([]note.Note, error) {
	value, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return []note.Note{}, asUnavailable(err)
	}
	if !ok {
		return []note.Note{}, nil
	}

	notes, err := Decode([]byte(value), c.newID)
	if err != nil {
		c.logger.Warn("discarding unparsable note list", "key", c.key, "error", err)
		return []note.Note{}, nil
	}
	return notes, nil
}

// Encode renders notes as a JSON array of records. An empty list encodes as "[]".
func Encode(notes []note.Note) ([]byte, error) {
	recs := make([]record, len(notes))
	for i, n := range notes {
		recs[i] = record(n)
	}
	return json.Marshal(recs)
}

// Decode parses a JSON array whose elements are either records or plain
// strings (the older shape). Entries without an ID get one from newID;
// blank entries are dropped.
func Decode(data []byte, newID func() string) ([]note.Note, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []note.Note{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode note list: %w", err)
	}

	notes := make([]note.Note, 0, len(raw))
	for i, elem := range raw {
		var rec record
		elem = bytes.TrimSpace(elem)
		if len(elem) > 0 && elem[0] == '"' {
			if err := json.Unmarshal(elem, &rec.Text); err != nil {
				return nil, fmt.Errorf("decode note %d: %w", i, err)
			}
		} else if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, fmt.Errorf("decode note %d: %w", i, err)
		}

		if note.IsBlank(rec.Text) {
			continue
		}
		if rec.ID == "" {
			rec.ID = newID()
		}
		notes = append(notes, note.Note(rec))
	}
	return notes, nil
}

func asUnavailable(err error) error {
	if errors.Is(err, errors.ErrPersistenceUnavailable) {
		return err
	}
	return errors.NewPersistenceUnavailable(err)
}

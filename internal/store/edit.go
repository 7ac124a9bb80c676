package store

import (
	"context"

	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/note"
)

// Draft describes the note under edit.
type Draft struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// BeginEdit starts editing the note with the given id, replacing any
// pending edit.
func (s *NoteStore) BeginEdit(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Draft{}, errors.NewNotFound(id)
	}
	return s.begin(i), nil
}

// BeginEditAt starts editing the note at index.
func (s *NoteStore) BeginEditAt(index int) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid(index) {
		return Draft{}, errors.NewIndexOutOfRange(index, len(s.notes))
	}
	return s.begin(index), nil
}

func (s *NoteStore) begin(index int) Draft {
	n := s.notes[index]
	s.editID = n.ID
	return Draft{ID: n.ID, Index: index, Text: n.Text}
}

// Editing returns the pending edit, if any.
func (s *NoteStore) Editing() (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(s.editID)
	if i < 0 {
		return Draft{}, false
	}
	n := s.notes[i]
	return Draft{ID: n.ID, Index: i, Text: n.Text}, true
}

// CommitEdit applies text to the note under edit and ends the edit.
// Blank text is ignored (committed == false) and the edit stays pending;
// n is then the note under edit, unchanged.
func (s *NoteStore) CommitEdit(ctx context.Context, text string) (n note.Note, committed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, text)
}

// CommitEditFor is CommitEdit guarded by the id the edit was opened for.
// A pending edit of any other note is left alone and NoActiveEdit returned.
func (s *NoteStore) CommitEditFor(ctx context.Context, id, text string) (n note.Note, committed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || s.editID != id {
		return note.Note{}, false, errors.NewNoActiveEdit()
	}
	return s.commit(ctx, text)
}

// commit applies the pending edit. Caller must hold s.mu.
func (s *NoteStore) commit(ctx context.Context, text string) (note.Note, bool, error) {
	i := s.indexOf(s.editID)
	if i < 0 {
		s.editID = ""
		return note.Note{}, false, errors.NewNoActiveEdit()
	}
	if note.IsBlank(text) {
		return s.notes[i], false, nil
	}

	n := s.update(ctx, i, text)
	s.editID = ""
	return n, true, nil
}

// CancelEdit drops the pending edit and reports whether one existed.
func (s *NoteStore) CancelEdit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	had := s.indexOf(s.editID) >= 0
	s.editID = ""
	return had
}

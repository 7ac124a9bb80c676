package store

import (
	"context"
	"slices"

	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/note"
)

// List returns the notes in insertion order.
func (s *NoteStore) List() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of notes.
func (s *NoteStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Add appends a note with the trimmed text. Blank text is ignored and
// reported with ok == false.
func (s *NoteStore) Add(ctx context.Context, text string) (n note.Note, ok bool) {
	if note.IsBlank(text) {
		return note.Note{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n = note.Note{
		ID:        s.newID(),
		Text:      note.Clean(text),
		Timestamp: s.timestamp(),
	}
	s.notes = append(s.notes, n)
	s.sync(ctx)
	return n, true
}

// GetAt returns the note at index, or ok == false for an invalid index.
func (s *NoteStore) GetAt(index int) (note.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(index) {
		return note.Note{}, false
	}
	return s.notes[index], true
}

// Get returns the note with the given id.
func (s *NoteStore) Get(id string) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return note.Note{}, errors.NewNotFound(id)
	}
	return s.notes[i], nil
}

// IndexOf returns the current position of id, or -1.
func (s *NoteStore) IndexOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id)
}

// Last returns the most recently added note.
func (s *NoteStore) Last() (note.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notes) == 0 {
		return note.Note{}, false
	}
	return s.notes[len(s.notes)-1], true
}

// UpdateAt replaces the text of the note at index, keeping its ID.
// Blank text leaves the list unchanged and returns updated == false.
func (s *NoteStore) UpdateAt(ctx context.Context, index int, text string) (updated bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid(index) {
		return false, errors.NewIndexOutOfRange(index, len(s.notes))
	}
	if note.IsBlank(text) {
		return false, nil
	}
	s.update(ctx, index, text)
	return true, nil
}

// UpdateByID replaces the text of the note with the given id.
func (s *NoteStore) UpdateByID(ctx context.Context, id, text string) (updated bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, errors.NewNotFound(id)
	}
	if note.IsBlank(text) {
		return false, nil
	}
	s.update(ctx, i, text)
	return true, nil
}

// update applies a non-blank edit. Caller must hold s.mu.
func (s *NoteStore) update(ctx context.Context, index int, text string) note.Note {
	n := s.notes[index]
	n.Text = note.Clean(text)
	if s.refreshOnEdit && s.timestamps {
		n.Timestamp = s.timestamp()
	}
	s.notes[index] = n
	s.sync(ctx)
	return n
}

// DeleteAt removes the note at index; later notes shift down by one.
func (s *NoteStore) DeleteAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid(index) {
		return errors.NewIndexOutOfRange(index, len(s.notes))
	}
	s.remove(ctx, index)
	return nil
}

// DeleteByID removes the note with the given id.
func (s *NoteStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFound(id)
	}
	s.remove(ctx, i)
	return nil
}

// remove deletes index and drops a pending edit of that note. Caller must hold s.mu.
func (s *NoteStore) remove(ctx context.Context, index int) {
	if s.notes[index].ID == s.editID {
		s.editID = ""
	}
	s.notes = slices.Delete(s.notes, index, index+1)
	s.sync(ctx)
}

// Clear empties the list unconditionally.
func (s *NoteStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = []note.Note{}
	s.editID = ""
	s.sync(ctx)
}

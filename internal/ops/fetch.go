package ops

import (
	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/store"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID    string
	Index *int
}

// Fetch retrieves a note by id or index.
func Fetch(s *store.NoteStore, input FetchInput) (*NoteView, error) {
	addr, err := ValidateAddress(input.ID, input.Index)
	if err != nil {
		return nil, err
	}

	n, index, err := resolve(s, addr)
	if err != nil {
		return nil, err
	}
	return newView(n, index), nil
}

// Latest retrieves the most recently added note.
func Latest(s *store.NoteStore) (*NoteView, error) {
	n, ok := s.Last()
	if !ok {
		return nil, errors.NewNotFound("latest")
	}
	return newView(n, s.IndexOf(n.ID)), nil
}

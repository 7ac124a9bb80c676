package ops

import (
	"context"

	"github.com/hpungsan/noten/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID    string
	Index *int
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes a note.
func Delete(ctx context.Context, s *store.NoteStore, input DeleteInput) (*DeleteOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Index)
	if err != nil {
		return nil, err
	}

	n, _, err := resolve(s, addr)
	if err != nil {
		return nil, err
	}
	if err := s.DeleteByID(ctx, n.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{Deleted: true, ID: n.ID}, nil
}

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Cleared int `json:"cleared"`
}

// Clear removes every note.
func Clear(ctx context.Context, s *store.NoteStore) *ClearOutput {
	count := s.Len()
	s.Clear(ctx)
	return &ClearOutput{Cleared: count}
}

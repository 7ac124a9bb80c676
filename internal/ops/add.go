package ops

import (
	"context"

	"github.com/hpungsan/noten/internal/store"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Text string
}

// AddOutput contains the result of the Add operation.
// Added is false when the text was blank.
type AddOutput struct {
	Added bool      `json:"added"`
	Note  *NoteView `json:"note,omitempty"`
}

// Add appends a note.
func Add(ctx context.Context, s *store.NoteStore, input AddInput) *AddOutput {
	n, ok := s.Add(ctx, input.Text)
	if !ok {
		return &AddOutput{Added: false}
	}
	return &AddOutput{Added: true, Note: newView(n, s.IndexOf(n.ID))}
}

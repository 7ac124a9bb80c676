package ops

import (
	"context"

	"github.com/hpungsan/noten/internal/store"
)

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	ID    string
	Index *int
	Text  string
}

// UpdateOutput contains the result of the Update operation.
// Updated is false when the new text was blank.
type UpdateOutput struct {
	Updated bool      `json:"updated"`
	Note    *NoteView `json:"note"`
}

// Update replaces the text of an existing note.
func Update(ctx context.Context, s *store.NoteStore, input UpdateInput) (*UpdateOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Index)
	if err != nil {
		return nil, err
	}

	var updated bool
	if addr.ByID {
		updated, err = s.UpdateByID(ctx, addr.ID, input.Text)
	} else {
		updated, err = s.UpdateAt(ctx, addr.Index, input.Text)
	}
	if err != nil {
		return nil, err
	}

	n, index, err := resolve(s, addr)
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Updated: updated, Note: newView(n, index)}, nil
}

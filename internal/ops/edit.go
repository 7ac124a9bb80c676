package ops

import (
	"context"

	"github.com/hpungsan/noten/internal/store"
)

// BeginEditInput addresses the note to edit.
type BeginEditInput struct {
	ID    string
	Index *int
}

// BeginEdit starts an edit and returns the draft to prefill an editor with.
func BeginEdit(s *store.NoteStore, input BeginEditInput) (*store.Draft, error) {
	addr, err := ValidateAddress(input.ID, input.Index)
	if err != nil {
		return nil, err
	}

	var draft store.Draft
	if addr.ByID {
		draft, err = s.BeginEdit(addr.ID)
	} else {
		draft, err = s.BeginEditAt(addr.Index)
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// CommitEdit applies text to the note under edit.
// Blank text leaves the edit pending and returns Updated == false.
func CommitEdit(ctx context.Context, s *store.NoteStore, text string) (*UpdateOutput, error) {
	n, committed, err := s.CommitEdit(ctx, text)
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Updated: committed, Note: newView(n, s.IndexOf(n.ID))}, nil
}

// CommitEditFor commits only if the pending edit is the one opened for id.
func CommitEditFor(ctx context.Context, s *store.NoteStore, id, text string) (*UpdateOutput, error) {
	n, committed, err := s.CommitEditFor(ctx, id, text)
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Updated: committed, Note: newView(n, s.IndexOf(n.ID))}, nil
}

// CancelEditOutput contains the result of the CancelEdit operation.
type CancelEditOutput struct {
	Cancelled bool `json:"cancelled"`
}

// CancelEdit drops the pending edit.
func CancelEdit(s *store.NoteStore) *CancelEditOutput {
	return &CancelEditOutput{Cancelled: s.CancelEdit()}
}

package ops

import (
	"strings"

	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/note"
	"github.com/hpungsan/noten/internal/store"
)

// Address represents a validated note address.
type Address struct {
	ByID  bool
	ID    string
	Index int
}

// ValidateAddress validates addressing parameters.
// Rules:
// - Must specify exactly one addressing mode: id OR index
// - If both provided → ErrAmbiguousAddressing
// - If neither provided → ErrInvalidRequest
func ValidateAddress(id string, index *int) (*Address, error) {
	id = strings.TrimSpace(id)
	hasID := id != ""
	hasIndex := index != nil

	if hasID && hasIndex {
		return nil, errors.NewAmbiguousAddressing()
	}
	if !hasID && !hasIndex {
		return nil, errors.NewInvalidRequest("must specify either id or index")
	}
	if hasID {
		return &Address{ByID: true, ID: id}, nil
	}
	return &Address{Index: *index}, nil
}

// NoteView is a note together with its current position.
type NoteView struct {
	note.Note
	Index  int `json:"index"`
	Number int `json:"number"`
}

func newView(n note.Note, index int) *NoteView {
	return &NoteView{Note: n, Index: index, Number: index + 1}
}

// resolve finds the note addressed by addr.
func resolve(s *store.NoteStore, addr *Address) (note.Note, int, error) {
	if addr.ByID {
		n, err := s.Get(addr.ID)
		if err != nil {
			return note.Note{}, -1, err
		}
		return n, s.IndexOf(n.ID), nil
	}
	n, ok := s.GetAt(addr.Index)
	if !ok {
		return note.Note{}, -1, errors.NewIndexOutOfRange(addr.Index, s.Len())
	}
	return n, addr.Index, nil
}

package ops

import (
	"github.com/hpungsan/noten/internal/note"
	"github.com/hpungsan/noten/internal/store"
)

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []note.Summary `json:"items"`
	Total      int            `json:"total"`
	Persistent bool           `json:"persistent"`
}

// List returns summaries of all notes in insertion order.
func List(s *store.NoteStore) *ListOutput {
	notes := s.List()
	items := make([]note.Summary, len(notes))
	for i, n := range notes {
		items[i] = n.ToSummary(i)
	}
	return &ListOutput{
		Items:      items,
		Total:      len(items),
		Persistent: s.Persistent(),
	}
}

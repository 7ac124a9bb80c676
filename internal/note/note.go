package note

// Note is a single user-authored text entry.
type Note struct {
	// ID is a ULID assigned at creation; it survives edits and reordering
	ID string `json:"id"`

	// Text is the trimmed, non-empty content of the note
	Text string `json:"text"`

	// Timestamp is the formatted creation time (empty when timestamps are disabled)
	Timestamp string `json:"timestamp,omitempty"`
}

// Summary is the list-view projection of a note.
type Summary struct {
	// Index is the note's current position in the list (0-based)
	Index int `json:"index"`

	// Number is the 1-based label shown to users ("Note #3")
	Number int `json:"number"`

	ID        string `json:"id"`
	Preview   string `json:"preview"`
	Chars     int    `json:"chars"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ToSummary converts a Note at the given index to a Summary.
func (n Note) ToSummary(index int) Summary {
	return Summary{
		Index:     index,
		Number:    index + 1,
		ID:        n.ID,
		Preview:   Preview(n.Text, DefaultPreviewChars),
		Chars:     CountChars(n.Text),
		Timestamp: n.Timestamp,
	}
}

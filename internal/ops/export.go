package ops

import (
	"io"
	"strings"

	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/persist"
	"github.com/hpungsan/noten/internal/store"
)

// Export writes all notes to w in the given format ("json" or "yaml").
func Export(w io.Writer, s *store.NoteStore, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "", persist.FormatJSON, persist.FormatYAML, "yml":
	default:
		return errors.NewInvalidRequest("format must be one of: json, yaml")
	}
	if err := persist.Export(w, s.List(), format); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/noten/internal/note"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// exportDoc is the top-level export document.
type exportDoc struct {
	Count int      `json:"count" yaml:"count"`
	Notes []record `json:"notes" yaml:"notes"`
}

// Export writes notes to w as an indented JSON or YAML document.
func Export(w io.Writer, notes []note.Note, format string) error {
	doc := exportDoc{Count: len(notes), Notes: make([]record, len(notes))}
	for i, n := range notes {
		doc.Notes[i] = record(n)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}

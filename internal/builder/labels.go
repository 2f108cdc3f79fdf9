package builder

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var labelCaser = cases.Title(language.English)

// inferLabel derives a display label from a marker-free terminal segment:
// separators become spaces and words are title-cased, so "mission_church"
// reads as "Mission Church".
func inferLabel(segment string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(segment)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return ""
	}
	return labelCaser.String(cleaned)
}

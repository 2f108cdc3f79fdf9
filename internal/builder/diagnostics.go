package builder

import "fmt"

// Diagnostic is one non-fatal problem encountered while processing a row.
// Diagnostics are collected on the Result so callers can render or persist
// them without scraping log output.
type Diagnostic struct {
	Hierarchy string
	Stage     string
	Message   string
}

func (d Diagnostic) String() string {
	if d.Hierarchy == "" {
		return fmt.Sprintf("[%s] %s", d.Stage, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Stage, d.Hierarchy, d.Message)
}

const (
	stageInput     = "input"
	stageNesting   = "nesting"
	stageMatching  = "matching"
	stageProbe     = "probe"
	stageNormalize = "normalize"
	stageJournal   = "journal"
)

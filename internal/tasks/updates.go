package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ParseSource Phase = iota
	ImportRows
	WriteSummary
)

func (p Phase) String() string {
	switch p {
	case ParseSource:
		return "parse_source"
	case ImportRows:
		return "import_rows"
	case WriteSummary:
		return "write_summary"
	default:
		return ""
	}
}

func parsingSourceUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseSource,
		Step:    1,
		Total:   1,
		Message: "Reading album rows...",
	}
}

func parsedSourceUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d album rows", total),
	}
}

func importingRowUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportRows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Importing: %s...", step, total, title),
	}
}

func importedRowUpdate(step, total int, title string, id int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportRows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (ID: %d)", step, total, title, id),
	}
}

func skippedRowUpdate(step, total, line int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportRows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ line %d: %v", step, total, line, err),
	}
}

func summaryUpdate(imported, skipped int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteSummary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Imported %d albums (%d skipped)", imported, skipped),
	}
}

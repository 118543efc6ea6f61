package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ParsingLibrary Phase = iota
	InsertingSongs
	FetchingMixes
	WritingExport
)

func (p Phase) String() string {
	switch p {
	case ParsingLibrary:
		return "parse_library"
	case InsertingSongs:
		return "insert_songs"
	case FetchingMixes:
		return "fetch_mixes"
	case WritingExport:
		return "write_export"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func parsingLibraryUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParsingLibrary,
		Step:    0,
		Total:   1,
		Message: "Reading library file...",
	}
}

func parsedLibraryUpdate(tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParsingLibrary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d tracks", tracks),
	}
}

func insertSongsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertingSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Storing songs...", step, total),
	}
}

func fetchMixesUpdate(found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchingMixes,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d mixes", found),
	}
}

func writeExportUpdate(format string, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WritingExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Rendered %s export (%d bytes)", format, size),
	}
}

package tasks

import "fmt"

// Phase identifies the stage of a running replace.
type Phase int

const (
	PhaseDeleting Phase = iota
	PhaseInserting
	PhaseDone
)

// String implements fmt.Stringer for log and progress output.
func (p Phase) String() string {
	switch p {
	case PhaseDeleting:
		return "deleting"
	case PhaseInserting:
		return "inserting"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ProgressUpdate reports sequential progress during a replace. Completed
// counts successful items within the current phase (skipped inserts are not
// counted); VideoID is set during insertion.
type ProgressUpdate struct {
	Phase     Phase
	Completed int
	Total     int
	VideoID   string
}

// Result summarizes a finished replace.
type Result struct {
	Deleted  int
	Inserted int
	Skipped  int
	Total    int
}

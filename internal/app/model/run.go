package model

import "time"

// Run is one recorded pipeline outcome, as persisted by the history
// repository. Failed runs keep the stage and error message; successful
// runs keep the transcript and artifact paths.
type Run struct {
	ID            int
	JobID         string
	Input         string
	Kind          string
	Title         string
	Language      string
	AudioDuration int
	Transcript    string
	FormattedPath string
	FinishedAt    time.Time
	HasError      bool
	FailedStage   string
	ErrorMessage  string
}

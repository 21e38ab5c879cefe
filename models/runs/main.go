package runs

import (
	"time"

	"gavin/api/models/constants"
	"gavin/api/models/files"
)

/*
	A Run tracks one end-to-end processing job for a single
	uploaded variant file: PENDING on upload, RUNNING once the
	external worker picks it up, SUCCESS or FAILED when it reports
	back. File references are cleared by the cleanup service once
	the run has expired; the Run itself is kept for statistics.
*/
type Run struct {
	Id            string `json:"id"`
	InputFileName string `json:"inputFileName"`

	FilteredInputFile  *files.FileMeta `json:"filteredInputFile,omitempty"`
	DiscardedInputFile *files.FileMeta `json:"discardedInputFile,omitempty"`
	OutputFile         *files.FileMeta `json:"outputFile,omitempty"`

	Log    string              `json:"log,omitempty"`
	Status constants.RunStatus `json:"status"`

	SubmittedAt time.Time  `json:"submittedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`

	// bumped by the repository on every successful update;
	// concurrent writers with a stale version lose
	Version int64 `json:"version"`
}

// AppendLog treats a previously absent log as empty.
func (r *Run) AppendLog(chunk string) {
	r.Log = r.Log + chunk
}

func (r *Run) ContainsFiles() bool {
	return r.FilteredInputFile != nil || r.DiscardedInputFile != nil || r.OutputFile != nil
}

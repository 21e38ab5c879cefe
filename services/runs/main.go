package runs

import (
	"fmt"
	"time"

	"gavin/api/models/constants"
	"gavin/api/models/constants/status"
	"gavin/api/models/files"
	runsModel "gavin/api/models/runs"
	"gavin/api/repositories"

	"github.com/google/uuid"
)

/*
	Owns the run state machine. Transitions are one-directional:

		PENDING -> RUNNING -> SUCCESS | FAILED
		PENDING ----------------------^

	(a run that never started can still be failed directly, e.g.
	when the upload contained no usable lines). Repeating the same
	terminal operation on a run already in that terminal state is a
	no-op so workers can retry safely; any other illegal move is
	rejected with a TransitionError.
*/

type TransitionError struct {
	RunId string
	From  constants.RunStatus
	To    constants.RunStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("run '%s' cannot move from %s to %s", e.RunId, e.From, e.To)
}

var allowedTransitions = map[constants.RunStatus][]constants.RunStatus{
	status.Pending: {status.Running, status.Failed},
	status.Running: {status.Success, status.Failed},
	status.Success: {},
	status.Failed:  {},
}

type RunService struct {
	Repository repositories.RunRepository
}

func NewRunService(repository repositories.RunRepository) *RunService {
	return &RunService{
		Repository: repository,
	}
}

// CreateRun allocates a new id and persists a PENDING run
// referencing the filtered and discarded upload derivatives.
func (s *RunService) CreateRun(inputFileName string, filteredInput *files.FileMeta, discardedInput *files.FileMeta) (*runsModel.Run, error) {
	run := &runsModel.Run{
		Id:                 uuid.NewString(),
		InputFileName:      inputFileName,
		FilteredInputFile:  filteredInput,
		DiscardedInputFile: discardedInput,
		Status:             status.Pending,
		SubmittedAt:        time.Now(),
	}

	if err := s.Repository.Save(run); err != nil {
		return nil, err
	}

	fmt.Printf("[%s] - Run created: '%s'\n", time.Now(), run.Id)
	return run, nil
}

func (s *RunService) Get(id string) (*runsModel.Run, error) {
	return s.Repository.FindById(id)
}

// Start marks the run RUNNING and stamps startedAt once.
func (s *RunService) Start(id string) error {
	run, err := s.Repository.FindById(id)
	if err != nil {
		return err
	}

	// tolerated idempotent re-entry
	if run.Status == status.Running {
		return nil
	}
	if err := checkTransition(run, status.Running); err != nil {
		return err
	}

	now := time.Now()
	run.StartedAt = &now
	run.Status = status.Running

	if err := s.Repository.Update(run); err != nil {
		return err
	}

	fmt.Printf("[%s] - Run started: '%s'\n", time.Now(), id)
	return nil
}

// Finish records the worker's output file, appends its log and
// marks the run SUCCESS.
func (s *RunService) Finish(id string, outputFile *files.FileMeta, logChunk string) error {
	run, err := s.Repository.FindById(id)
	if err != nil {
		return err
	}

	// a repeated finish on an already-successful run is a retry, not a conflict
	if run.Status == status.Success {
		return nil
	}
	if err := checkTransition(run, status.Success); err != nil {
		return err
	}

	now := time.Now()
	run.OutputFile = outputFile
	run.AppendLog(logChunk)
	run.FinishedAt = &now
	run.Status = status.Success

	if err := s.Repository.Update(run); err != nil {
		return err
	}

	fmt.Printf("[%s] - Run finished: '%s'\n", time.Now(), id)
	return nil
}

// Fail appends the log chunk and marks the run FAILED. Any
// non-terminal run may be failed directly.
func (s *RunService) Fail(id string, logChunk string) error {
	run, err := s.Repository.FindById(id)
	if err != nil {
		return err
	}

	if run.Status == status.Failed {
		return nil
	}
	if err := checkTransition(run, status.Failed); err != nil {
		return err
	}

	now := time.Now()
	run.AppendLog(logChunk)
	run.FinishedAt = &now
	run.Status = status.Failed

	if err := s.Repository.Update(run); err != nil {
		return err
	}

	fmt.Printf("[%s] - Run failed: '%s'\n", time.Now(), id)
	return nil
}

// DetachFiles clears all three file references on the run and
// persists the update, returning the metadata that was referenced
// so the caller can delete the underlying blobs afterwards. The
// run record itself is kept.
func (s *RunService) DetachFiles(id string) ([]*files.FileMeta, error) {
	run, err := s.Repository.FindById(id)
	if err != nil {
		return nil, err
	}

	detached := make([]*files.FileMeta, 0, 3)
	for _, meta := range []*files.FileMeta{run.FilteredInputFile, run.DiscardedInputFile, run.OutputFile} {
		if meta != nil {
			detached = append(detached, meta)
		}
	}

	run.FilteredInputFile = nil
	run.DiscardedInputFile = nil
	run.OutputFile = nil

	if err := s.Repository.Update(run); err != nil {
		return nil, err
	}

	return detached, nil
}

// FindCompleted returns all runs in a terminal state.
func (s *RunService) FindCompleted() ([]*runsModel.Run, error) {
	return s.Repository.FindByStatuses([]constants.RunStatus{status.Success, status.Failed})
}

func checkTransition(run *runsModel.Run, to constants.RunStatus) error {
	for _, allowed := range allowedTransitions[run.Status] {
		if allowed == to {
			return nil
		}
	}
	return &TransitionError{RunId: run.Id, From: run.Status, To: to}
}

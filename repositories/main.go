package repositories

import (
	"errors"

	"gavin/api/models/constants"
	"gavin/api/models/runs"
)

var (
	ErrRunNotFound = errors.New("run not found")

	// returned by Update when the stored run has moved past the
	// version the caller read; callers must re-query the run
	ErrVersionConflict = errors.New("run version conflict")
)

/*
	Entity store boundary for Run records. All Run mutation in the
	system goes through the run service, which persists through one
	of these; nothing writes run state directly.
*/
type RunRepository interface {
	// Save persists a brand new run; the run's Version must be zero.
	Save(run *runs.Run) error

	// Update persists changes to an existing run using optimistic
	// concurrency: it fails with ErrVersionConflict unless the stored
	// version matches run.Version, and bumps the version on success.
	Update(run *runs.Run) error

	// FindById fails with ErrRunNotFound for unknown ids.
	FindById(id string) (*runs.Run, error)

	FindByStatuses(statuses []constants.RunStatus) ([]*runs.Run, error)
}

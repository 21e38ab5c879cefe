package memory

import (
	"sync"

	"gavin/api/models/constants"
	"gavin/api/models/runs"
	"gavin/api/repositories"
)

/*
	In-memory RunRepository; the default for single node deployments
	and for tests. Runs are stored by value so callers can't reach
	around the optimistic locking by mutating shared pointers.
*/
type RunRepository struct {
	runMap    map[string]runs.Run
	runMapMux sync.RWMutex
}

func NewRunRepository() *RunRepository {
	return &RunRepository{
		runMap:    map[string]runs.Run{},
		runMapMux: sync.RWMutex{},
	}
}

func (r *RunRepository) Save(run *runs.Run) error {
	r.runMapMux.Lock()
	defer r.runMapMux.Unlock()

	run.Version = 1
	r.runMap[run.Id] = *run

	return nil
}

func (r *RunRepository) Update(run *runs.Run) error {
	r.runMapMux.Lock()
	defer r.runMapMux.Unlock()

	stored, ok := r.runMap[run.Id]
	if !ok {
		return repositories.ErrRunNotFound
	}
	if stored.Version != run.Version {
		return repositories.ErrVersionConflict
	}

	run.Version++
	r.runMap[run.Id] = *run

	return nil
}

func (r *RunRepository) FindById(id string) (*runs.Run, error) {
	r.runMapMux.RLock()
	defer r.runMapMux.RUnlock()

	stored, ok := r.runMap[id]
	if !ok {
		return nil, repositories.ErrRunNotFound
	}

	found := stored
	return &found, nil
}

func (r *RunRepository) FindByStatuses(statuses []constants.RunStatus) ([]*runs.Run, error) {
	r.runMapMux.RLock()
	defer r.runMapMux.RUnlock()

	matches := make([]*runs.Run, 0)
	for _, stored := range r.runMap {
		for _, s := range statuses {
			if stored.Status == s {
				found := stored
				matches = append(matches, &found)
				break
			}
		}
	}

	return matches, nil
}

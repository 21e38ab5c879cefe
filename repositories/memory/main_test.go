package memory

import (
	"testing"

	"gavin/api/models/constants"
	"gavin/api/models/constants/status"
	"gavin/api/models/runs"
	"gavin/api/repositories"

	"github.com/stretchr/testify/assert"
)

func TestSaveAndFindById(t *testing.T) {
	repository := NewRunRepository()

	run := &runs.Run{Id: "run-1", InputFileName: "input.vcf", Status: status.Pending}
	assert.NoError(t, repository.Save(run))
	assert.Equal(t, int64(1), run.Version)

	found, err := repository.FindById("run-1")
	assert.NoError(t, err)
	assert.Equal(t, "input.vcf", found.InputFileName)
	assert.Equal(t, int64(1), found.Version)
}

func TestFindByIdUnknown(t *testing.T) {
	repository := NewRunRepository()

	_, err := repository.FindById("nope")
	assert.ErrorIs(t, err, repositories.ErrRunNotFound)
}

func TestFindByIdReturnsACopy(t *testing.T) {
	repository := NewRunRepository()
	repository.Save(&runs.Run{Id: "run-1", Status: status.Pending})

	found, _ := repository.FindById("run-1")
	found.Status = status.Running

	// mutating the returned run must not leak into the store
	foundAgain, _ := repository.FindById("run-1")
	assert.Equal(t, status.Pending, foundAgain.Status)
}

func TestUpdateBumpsVersion(t *testing.T) {
	repository := NewRunRepository()
	repository.Save(&runs.Run{Id: "run-1", Status: status.Pending})

	run, _ := repository.FindById("run-1")
	run.Status = status.Running
	assert.NoError(t, repository.Update(run))
	assert.Equal(t, int64(2), run.Version)

	found, _ := repository.FindById("run-1")
	assert.Equal(t, status.Running, found.Status)
	assert.Equal(t, int64(2), found.Version)
}

func TestUpdateUnknownRun(t *testing.T) {
	repository := NewRunRepository()

	err := repository.Update(&runs.Run{Id: "nope"})
	assert.ErrorIs(t, err, repositories.ErrRunNotFound)
}

func TestConcurrentUpdateLosesWithStaleVersion(t *testing.T) {
	repository := NewRunRepository()
	repository.Save(&runs.Run{Id: "run-1", Status: status.Pending})

	first, _ := repository.FindById("run-1")
	second, _ := repository.FindById("run-1")

	first.Status = status.Running
	assert.NoError(t, repository.Update(first))

	// the second writer still holds version 1 and must be rejected
	second.Status = status.Failed
	assert.ErrorIs(t, repository.Update(second), repositories.ErrVersionConflict)

	found, _ := repository.FindById("run-1")
	assert.Equal(t, status.Running, found.Status)
}

func TestFindByStatuses(t *testing.T) {
	repository := NewRunRepository()
	repository.Save(&runs.Run{Id: "run-1", Status: status.Pending})
	repository.Save(&runs.Run{Id: "run-2", Status: status.Success})
	repository.Save(&runs.Run{Id: "run-3", Status: status.Failed})

	terminal, err := repository.FindByStatuses([]constants.RunStatus{status.Success, status.Failed})
	assert.NoError(t, err)
	assert.Len(t, terminal, 2)

	none, err := repository.FindByStatuses([]constants.RunStatus{status.Running})
	assert.NoError(t, err)
	assert.Empty(t, none)
}

package runs

import (
	"testing"
	"time"

	"gavin/api/models/constants/status"
	"gavin/api/models/files"
	runsModel "gavin/api/models/runs"
	"gavin/api/repositories"
	"gavin/api/repositories/memory"

	. "github.com/ahmetb/go-linq"
	"github.com/stretchr/testify/assert"
)

func newTestService() *RunService {
	return NewRunService(memory.NewRunRepository())
}

func testOutputMeta() *files.FileMeta {
	return &files.FileMeta{Id: "out-1", Filename: "result.vcf", Url: "/files/out-1"}
}

func TestCreateRunStartsPending(t *testing.T) {
	service := newTestService()

	run, err := service.CreateRun("input.vcf",
		&files.FileMeta{Id: "f-1", Filename: "filteredInput.vcf"},
		&files.FileMeta{Id: "d-1", Filename: "discardedInput.txt"})

	assert.NoError(t, err)
	assert.NotEmpty(t, run.Id)
	assert.Equal(t, status.Pending, run.Status)
	assert.False(t, run.SubmittedAt.IsZero())
	assert.Nil(t, run.StartedAt)
	assert.Nil(t, run.FinishedAt)

	found, err := service.Get(run.Id)
	assert.NoError(t, err)
	assert.Equal(t, run.Id, found.Id)
}

func TestGetUnknownRun(t *testing.T) {
	service := newTestService()

	_, err := service.Get("nope")
	assert.ErrorIs(t, err, repositories.ErrRunNotFound)
}

func TestFullLifecycle(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)

	assert.NoError(t, service.Start(run.Id))
	started, _ := service.Get(run.Id)
	assert.Equal(t, status.Running, started.Status)
	assert.NotNil(t, started.StartedAt)

	assert.NoError(t, service.Finish(run.Id, testOutputMeta(), "all done\n"))
	finished, _ := service.Get(run.Id)
	assert.Equal(t, status.Success, finished.Status)
	assert.NotNil(t, finished.FinishedAt)
	assert.Equal(t, "all done\n", finished.Log)
	assert.Equal(t, "out-1", finished.OutputFile.Id)

	// started before (or when) it finished
	assert.False(t, finished.FinishedAt.Before(*finished.StartedAt))
}

func TestPendingRunCanFailDirectly(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)

	assert.NoError(t, service.Fail(run.Id, "No usable lines were found in the uploaded file"))

	failed, _ := service.Get(run.Id)
	assert.Equal(t, status.Failed, failed.Status)
	assert.Contains(t, failed.Log, "usable lines")
	assert.NotNil(t, failed.FinishedAt)
}

func TestPendingRunCannotFinish(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)

	err := service.Finish(run.Id, testOutputMeta(), "")

	var transitionErr *TransitionError
	assert.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, status.Pending, transitionErr.From)
	assert.Equal(t, status.Success, transitionErr.To)
}

func TestTerminalRunsRejectRestart(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)
	service.Start(run.Id)
	service.Finish(run.Id, testOutputMeta(), "")

	var transitionErr *TransitionError
	assert.ErrorAs(t, service.Start(run.Id), &transitionErr)
	assert.ErrorAs(t, service.Fail(run.Id, "too late"), &transitionErr)
}

func TestRepeatedTerminalOperationIsANoOp(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)
	service.Start(run.Id)

	assert.NoError(t, service.Finish(run.Id, testOutputMeta(), "first\n"))

	// a worker retrying its finish callback must not error out,
	// and must not overwrite the first report
	assert.NoError(t, service.Finish(run.Id, &files.FileMeta{Id: "out-2"}, "second\n"))

	finished, _ := service.Get(run.Id)
	assert.Equal(t, "out-1", finished.OutputFile.Id)
	assert.Equal(t, "first\n", finished.Log)
}

func TestRepeatedStartIsANoOp(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)

	assert.NoError(t, service.Start(run.Id))
	started, _ := service.Get(run.Id)

	assert.NoError(t, service.Start(run.Id))
	startedAgain, _ := service.Get(run.Id)

	assert.Equal(t, started.StartedAt, startedAgain.StartedAt)
}

func TestFailAppendsToExistingLog(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)
	service.Start(run.Id)

	assert.NoError(t, service.Fail(run.Id, "worker exploded\n"))

	failed, _ := service.Get(run.Id)
	assert.Equal(t, "worker exploded\n", failed.Log)
}

func TestDetachFiles(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf",
		&files.FileMeta{Id: "f-1"},
		&files.FileMeta{Id: "d-1"})
	service.Start(run.Id)
	service.Finish(run.Id, testOutputMeta(), "")

	detached, err := service.DetachFiles(run.Id)
	assert.NoError(t, err)
	assert.Len(t, detached, 3)

	// the record survives with its references cleared
	cleared, _ := service.Get(run.Id)
	assert.False(t, cleared.ContainsFiles())
	assert.Equal(t, status.Success, cleared.Status)
}

func TestFindCompletedOnlyReturnsTerminalRuns(t *testing.T) {
	service := newTestService()

	pending, _ := service.CreateRun("a.vcf", nil, nil)
	running, _ := service.CreateRun("b.vcf", nil, nil)
	service.Start(running.Id)

	succeeded, _ := service.CreateRun("c.vcf", nil, nil)
	service.Start(succeeded.Id)
	service.Finish(succeeded.Id, testOutputMeta(), "")

	failed, _ := service.CreateRun("d.vcf", nil, nil)
	service.Fail(failed.Id, "boom")

	completed, err := service.FindCompleted()
	assert.NoError(t, err)
	assert.Len(t, completed, 2)

	completedIds := []string{}
	From(completed).
		Select(func(r interface{}) interface{} { return r.(*runsModel.Run).Id }).
		ToSlice(&completedIds)

	assert.Contains(t, completedIds, succeeded.Id)
	assert.Contains(t, completedIds, failed.Id)
	assert.NotContains(t, completedIds, pending.Id)
	assert.NotContains(t, completedIds, running.Id)
}

func TestTimestampsAreMonotonic(t *testing.T) {
	service := newTestService()
	run, _ := service.CreateRun("input.vcf", nil, nil)

	time.Sleep(time.Millisecond)
	service.Start(run.Id)
	time.Sleep(time.Millisecond)
	service.Finish(run.Id, testOutputMeta(), "")

	finished, _ := service.Get(run.Id)
	assert.True(t, finished.SubmittedAt.Before(*finished.StartedAt))
	assert.True(t, finished.StartedAt.Before(*finished.FinishedAt))
}

package cleanup

import (
	"strings"
	"testing"
	"time"

	"gavin/api/models/constants/status"
	"gavin/api/models/files"
	"gavin/api/repositories/memory"
	runsService "gavin/api/services/runs"
	"gavin/api/services/storage"
	localStore "gavin/api/services/storage/local"

	"github.com/stretchr/testify/assert"
)

type fixture struct {
	repository *memory.RunRepository
	runService *runsService.RunService
	fileStore  storage.FileStore
	cleanup    *CleanupService
}

func newFixture(t *testing.T) *fixture {
	fileStore, err := localStore.NewFileStore(t.TempDir())
	assert.NoError(t, err)

	repository := memory.NewRunRepository()
	rs := runsService.NewRunService(repository)

	return &fixture{
		repository: repository,
		runService: rs,
		fileStore:  fileStore,
		cleanup:    NewCleanupService(rs, fileStore, 24*time.Hour),
	}
}

// completedRun creates a run in a terminal state holding three
// stored files, finished at the given moment
func (f *fixture) completedRun(t *testing.T, finishedAt time.Time, succeed bool) string {
	for _, id := range []string{"filtered", "discarded", "output"} {
		_, err := f.fileStore.Store(id, strings.NewReader("contents"))
		assert.NoError(t, err)
	}

	run, err := f.runService.CreateRun("input.vcf",
		&files.FileMeta{Id: "filtered", Filename: "filteredInput.vcf"},
		&files.FileMeta{Id: "discarded", Filename: "discardedInput.txt"})
	assert.NoError(t, err)

	assert.NoError(t, f.runService.Start(run.Id))
	if succeed {
		assert.NoError(t, f.runService.Finish(run.Id, &files.FileMeta{Id: "output", Filename: "result.vcf"}, ""))
	} else {
		assert.NoError(t, f.runService.Fail(run.Id, "boom"))
	}

	// backdate the finish timestamp
	stored, err := f.repository.FindById(run.Id)
	assert.NoError(t, err)
	stored.FinishedAt = &finishedAt
	assert.NoError(t, f.repository.Update(stored))

	return run.Id
}

func TestSweepReclaimsExpiredRunFiles(t *testing.T) {
	f := newFixture(t)
	runId := f.completedRun(t, time.Now().Add(-25*time.Hour), false)

	f.cleanup.Sweep()

	// the record survives with its status and log, but without files
	run, err := f.runService.Get(runId)
	assert.NoError(t, err)
	assert.Equal(t, status.Failed, run.Status)
	assert.False(t, run.ContainsFiles())

	for _, id := range []string{"filtered", "discarded", "output"} {
		_, openErr := f.fileStore.Open(id)
		assert.ErrorIs(t, openErr, storage.ErrFileNotFound)
	}
}

func TestSweepLeavesFreshRunsAlone(t *testing.T) {
	f := newFixture(t)
	runId := f.completedRun(t, time.Now().Add(-1*time.Hour), true)

	f.cleanup.Sweep()

	run, _ := f.runService.Get(runId)
	assert.True(t, run.ContainsFiles())

	for _, id := range []string{"filtered", "discarded", "output"} {
		blob, openErr := f.fileStore.Open(id)
		assert.NoError(t, openErr)
		blob.Close()
	}
}

func TestSweepLeavesActiveRunsAlone(t *testing.T) {
	f := newFixture(t)

	_, err := f.fileStore.Store("active-filtered", strings.NewReader("contents"))
	assert.NoError(t, err)

	run, _ := f.runService.CreateRun("input.vcf",
		&files.FileMeta{Id: "active-filtered", Filename: "filteredInput.vcf"}, nil)
	assert.NoError(t, f.runService.Start(run.Id))

	f.cleanup.Sweep()

	found, _ := f.runService.Get(run.Id)
	assert.True(t, found.ContainsFiles())
}

func TestSweepTreatsMissingFinishTimestampAsExpired(t *testing.T) {
	f := newFixture(t)
	runId := f.completedRun(t, time.Now(), true)

	// simulate inconsistent data from an older record
	stored, _ := f.repository.FindById(runId)
	stored.FinishedAt = nil
	assert.NoError(t, f.repository.Update(stored))

	f.cleanup.Sweep()

	run, _ := f.runService.Get(runId)
	assert.False(t, run.ContainsFiles())
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newFixture(t)
	runId := f.completedRun(t, time.Now().Add(-25*time.Hour), true)

	f.cleanup.Sweep()
	f.cleanup.Sweep()

	run, err := f.runService.Get(runId)
	assert.NoError(t, err)
	assert.False(t, run.ContainsFiles())
}

func TestInitOnlyInitializesOnce(t *testing.T) {
	f := newFixture(t)

	f.cleanup.Init(time.Hour)
	firstScheduler := f.cleanup.scheduler

	f.cleanup.Init(time.Hour)
	assert.True(t, f.cleanup.Initialized)
	assert.Same(t, firstScheduler, f.cleanup.scheduler)
}

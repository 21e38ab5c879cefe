package cleanup

import (
	"fmt"
	"time"

	"gavin/api/models/constants/status"
	runsModel "gavin/api/models/runs"
	runsService "gavin/api/services/runs"
	"gavin/api/services/storage"

	"github.com/go-co-op/gocron"
)

/*
	Periodic reclamation of completed runs' stored files. File
	references are cleared on the run record before the blobs are
	deleted, so a crash mid-sweep never leaves a run pointing at a
	deleted file. Run records themselves are kept for statistics.
*/
type CleanupService struct {
	Initialized   bool
	RunService    *runsService.RunService
	FileStore     storage.FileStore
	RetentionTime time.Duration

	scheduler *gocron.Scheduler
}

func NewCleanupService(runService *runsService.RunService, fileStore storage.FileStore, retentionTime time.Duration) *CleanupService {
	return &CleanupService{
		Initialized:   false,
		RunService:    runService,
		FileStore:     fileStore,
		RetentionTime: retentionTime,
	}
}

// Init schedules the sweep at a fixed interval. SingletonMode
// guarantees a sweep never overlaps with itself; it may run
// concurrently with request-driven operations.
func (cs *CleanupService) Init(sweepInterval time.Duration) {
	// safeguard to prevent multiple initializations
	if cs.Initialized {
		return
	}

	s := gocron.NewScheduler(time.UTC)
	s.Every(sweepInterval).SingletonMode().Do(func() {
		cs.Sweep()
	})
	s.StartAsync()

	cs.scheduler = s
	cs.Initialized = true
	fmt.Println("Cleanup Service Initialized ..")
}

// Sweep performs one reclamation pass over all completed runs.
func (cs *CleanupService) Sweep() {
	fmt.Printf("[%s] - Running expired run file cleanup..\n", time.Now())

	completedRuns, err := cs.RunService.FindCompleted()
	if err != nil {
		fmt.Printf("[%s] - Error querying completed runs: %v..\n", time.Now(), err)
		return
	}

	for _, run := range completedRuns {
		if !status.IsTerminal(run.Status) {
			continue
		}
		if !cs.hasExpired(run) {
			continue
		}
		if !run.ContainsFiles() {
			continue
		}
		cs.deleteFilesFromRun(run)
	}

	fmt.Printf("[%s] - Cleanup routine ended\n", time.Now())
}

func (cs *CleanupService) hasExpired(run *runsModel.Run) bool {
	if run.FinishedAt == nil {
		// a completed run without a finish timestamp is inconsistent data;
		// treat it conservatively as already expired
		fmt.Printf("Run '%s' 'finishedAt' field is missing. Marking as expired.\n", run.Id)
		return true
	}

	return time.Since(*run.FinishedAt) > cs.RetentionTime
}

func (cs *CleanupService) deleteFilesFromRun(run *runsModel.Run) {
	fmt.Printf("[%s] - Deleting files of expired run '%s'\n", time.Now(), run.Id)

	// drop the references first, then the blobs
	detached, err := cs.RunService.DetachFiles(run.Id)
	if err != nil {
		fmt.Printf("Failed to detach files from run '%s': %s\n", run.Id, err)
		return
	}

	for _, meta := range detached {
		if deleteErr := cs.FileStore.Delete(meta.Id); deleteErr != nil {
			fmt.Printf("Failed to delete stored file '%s' of run '%s': %s\n", meta.Id, run.Id, deleteErr)
		}
	}

	fmt.Printf("[%s] - Done deleting files of run '%s'\n", time.Now(), run.Id)
}

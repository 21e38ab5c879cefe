package ingestion

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gavin/api/models/files"
	"gavin/api/services/input"
	runsService "gavin/api/services/runs"
	"gavin/api/services/storage"

	"github.com/google/uuid"
)

const (
	NoUsableLinesMessage = "No usable lines were found in the uploaded file"

	FilteredInputFileName  = "filteredInput.vcf"
	DiscardedInputFileName = "discardedInput.txt"
	derivativeContentType  = "text/tsv"
)

/*
	Glues an inbound upload to the filter engine and the run
	registry, and the external worker's callbacks to run
	transitions. The raw upload is only kept long enough to be
	filtered; the filtered/discarded derivatives are what the run
	retains.
*/
type IngestionService struct {
	FileStore  storage.FileStore
	RunService *runsService.RunService
}

func NewIngestionService(fileStore storage.FileStore, runService *runsService.RunService) *IngestionService {
	return &IngestionService{
		FileStore:  fileStore,
		RunService: runService,
	}
}

// Upload stores the raw bytes, streams them through the filter
// engine into two new stored files, creates the PENDING run and
// fails it right away when no usable lines were found. The raw
// input blob is deleted once its derivatives exist; callers poll
// the returned run id.
func (i *IngestionService) Upload(source io.Reader, displayName string) (string, error) {
	startTime := time.Now()
	fmt.Printf("[%s] - Upload of '%s' starting\n", startTime, displayName)

	rawFileId := uuid.NewString()
	if _, err := i.FileStore.Store(rawFileId, source); err != nil {
		return "", fmt.Errorf("error storing raw upload: %s", err)
	}

	tally, filteredMeta, discardedMeta, parseErr := i.parseInputFile(rawFileId, displayName)
	if parseErr != nil {
		return "", parseErr
	}

	run, createErr := i.RunService.CreateRun(displayName, filteredMeta, discardedMeta)
	if createErr != nil {
		return "", createErr
	}

	if tally.Usable() == 0 {
		if failErr := i.RunService.Fail(run.Id, NoUsableLinesMessage); failErr != nil {
			return "", failErr
		}
	}

	// only the filtered/discarded derivatives are retained
	if deleteErr := i.FileStore.Delete(rawFileId); deleteErr != nil {
		fmt.Printf("Failed to delete raw upload '%s': %s\n", rawFileId, deleteErr)
	}

	fmt.Printf("[%s] - Upload of '%s' done, line tally: %v (took %s)\n",
		time.Now(), displayName, tally, time.Since(startTime))

	return run.Id, nil
}

func (i *IngestionService) parseInputFile(rawFileId string, displayName string) (input.Tally, *files.FileMeta, *files.FileMeta, error) {
	// reopen the stored upload, as the inbound stream has depleted
	rawReader, openErr := i.FileStore.Open(rawFileId)
	if openErr != nil {
		return nil, nil, nil, fmt.Errorf("error reopening raw upload: %s", openErr)
	}
	defer rawReader.Close()

	var source io.Reader = rawReader
	if strings.HasSuffix(strings.ToLower(displayName), ".gz") {
		gzReader, gzErr := gzip.NewReader(rawReader)
		if gzErr != nil {
			return nil, nil, nil, fmt.Errorf("error opening gzipped upload: %s", gzErr)
		}
		defer gzReader.Close()
		source = gzReader
	}

	// the sinks write to scratch files which are then promoted
	// into the file store as the run's derivatives
	filteredScratch, err := os.CreateTemp("", "gavin-filtered-*")
	if err != nil {
		return nil, nil, nil, err
	}
	defer os.Remove(filteredScratch.Name())

	discardedScratch, err := os.CreateTemp("", "gavin-discarded-*")
	if err != nil {
		filteredScratch.Close()
		return nil, nil, nil, err
	}
	defer os.Remove(discardedScratch.Name())

	tally, transformErr := input.Transform(
		source,
		input.NewLineSink(FilteredInputFileName, filteredScratch),
		input.NewLineSink(DiscardedInputFileName, discardedScratch),
	)
	if transformErr != nil {
		return nil, nil, nil, transformErr
	}

	filteredMeta, filteredErr := i.storeScratchFile(filteredScratch.Name(), FilteredInputFileName)
	if filteredErr != nil {
		return nil, nil, nil, filteredErr
	}

	discardedMeta, discardedErr := i.storeScratchFile(discardedScratch.Name(), DiscardedInputFileName)
	if discardedErr != nil {
		return nil, nil, nil, discardedErr
	}

	return tally, filteredMeta, discardedMeta, nil
}

func (i *IngestionService) storeScratchFile(scratchPath string, filename string) (*files.FileMeta, error) {
	scratch, err := os.Open(scratchPath)
	if err != nil {
		return nil, err
	}
	defer scratch.Close()

	id := uuid.NewString()
	size, storeErr := i.FileStore.Store(id, scratch)
	if storeErr != nil {
		return nil, fmt.Errorf("error storing derivative '%s': %s", filename, storeErr)
	}

	return &files.FileMeta{
		Id:          id,
		Filename:    filename,
		ContentType: derivativeContentType,
		Size:        size,
		Url:         fmt.Sprintf("/files/%s", id),
	}, nil
}

// ReportStart marks the run as picked up by the external worker.
func (i *IngestionService) ReportStart(runId string) error {
	return i.RunService.Start(runId)
}

// ReportFinish stores the worker's output bytes and completes the run.
func (i *IngestionService) ReportFinish(runId string, output io.Reader, outputFileName string, logText string) error {
	id := uuid.NewString()
	size, storeErr := i.FileStore.Store(id, output)
	if storeErr != nil {
		return fmt.Errorf("error storing output file for run '%s': %s", runId, storeErr)
	}

	outputMeta := &files.FileMeta{
		Id:          id,
		Filename:    outputFileName,
		ContentType: derivativeContentType,
		Size:        size,
		Url:         fmt.Sprintf("/files/%s", id),
	}

	return i.RunService.Finish(runId, outputMeta, logText)
}

// ReportFail records the worker's log and fails the run.
func (i *IngestionService) ReportFail(runId string, logText string) error {
	return i.RunService.Fail(runId, logText)
}

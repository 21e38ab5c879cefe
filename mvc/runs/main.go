package runs

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gavin/api/contexts"
	"gavin/api/models/dtos"
	dtoErrors "gavin/api/models/dtos/errors"
	"gavin/api/models/files"
	"gavin/api/repositories"
	runsService "gavin/api/services/runs"

	"github.com/labstack/echo"
)

func Upload(c echo.Context) error {
	fmt.Printf("[%s] - Upload hit!\n", time.Now())
	gc := c.(*contexts.GavinContext)

	fileHeader, formErr := c.FormFile("file")
	if formErr != nil {
		return c.JSON(http.StatusBadRequest,
			dtoErrors.CreateSimpleBadRequest("Request is not of type multipart/form-data or is missing a 'file' part!"))
	}

	source, openErr := fileHeader.Open()
	if openErr != nil {
		return c.JSON(http.StatusInternalServerError,
			dtoErrors.CreateSimpleInternalServerError("Failed to open the uploaded file!"))
	}
	defer source.Close()

	runId, uploadErr := gc.IngestionService.Upload(source, fileHeader.Filename)
	if uploadErr != nil {
		fmt.Printf("Upload of '%s' failed: %s\n", fileHeader.Filename, uploadErr)
		return c.JSON(http.StatusInternalServerError,
			dtoErrors.CreateSimpleInternalServerError("Something went wrong storing the uploaded file.. Please try again!"))
	}

	run, getErr := gc.RunService.Get(runId)
	if getErr != nil {
		return respondRunError(c, getErr)
	}

	return c.JSON(http.StatusCreated, dtos.UploadResponseDTO{
		Id:       run.Id,
		Filename: run.InputFileName,
		Status:   run.Status,
		Message:  "Successfully uploaded..",
	})
}

func GetRun(c echo.Context) error {
	fmt.Printf("[%s] - GetRun hit!\n", time.Now())
	gc := c.(*contexts.GavinContext)

	run, err := gc.RunService.Get(c.Param("id"))
	if err != nil {
		return respondRunError(c, err)
	}

	return c.JSON(http.StatusOK, dtos.NewRunResponseDTO(run))
}

func Start(c echo.Context) error {
	fmt.Printf("[%s] - Start hit!\n", time.Now())
	gc := c.(*contexts.GavinContext)

	if err := gc.IngestionService.ReportStart(c.Param("id")); err != nil {
		return respondRunError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func Finish(c echo.Context) error {
	fmt.Printf("[%s] - Finish hit!\n", time.Now())
	gc := c.(*contexts.GavinContext)

	outputHeader, formErr := c.FormFile("outputFile")
	if formErr != nil {
		return c.JSON(http.StatusBadRequest,
			dtoErrors.CreateSimpleBadRequest("Request is not of type multipart/form-data or is missing an 'outputFile' part!"))
	}

	output, openErr := outputHeader.Open()
	if openErr != nil {
		return c.JSON(http.StatusInternalServerError,
			dtoErrors.CreateSimpleInternalServerError("Failed to open the uploaded output file!"))
	}
	defer output.Close()

	logText := c.FormValue("log")

	if err := gc.IngestionService.ReportFinish(c.Param("id"), output, outputHeader.Filename, logText); err != nil {
		return respondRunError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func Fail(c echo.Context) error {
	fmt.Printf("[%s] - Fail hit!\n", time.Now())
	gc := c.(*contexts.GavinContext)

	if err := gc.IngestionService.ReportFail(c.Param("id"), c.FormValue("log")); err != nil {
		return respondRunError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func DownloadOutputFile(c echo.Context) error {
	fmt.Printf("[%s] - DownloadOutputFile hit!\n", time.Now())
	return downloadRunFile(c, func(run *runFiles) *files.FileMeta { return run.output })
}

func DownloadInputFile(c echo.Context) error {
	fmt.Printf("[%s] - DownloadInputFile hit!\n", time.Now())
	return downloadRunFile(c, func(run *runFiles) *files.FileMeta { return run.filtered })
}

func DownloadErrorFile(c echo.Context) error {
	fmt.Printf("[%s] - DownloadErrorFile hit!\n", time.Now())
	return downloadRunFile(c, func(run *runFiles) *files.FileMeta { return run.discarded })
}

type runFiles struct {
	filtered  *files.FileMeta
	discarded *files.FileMeta
	output    *files.FileMeta
}

func downloadRunFile(c echo.Context, selector func(*runFiles) *files.FileMeta) error {
	gc := c.(*contexts.GavinContext)

	run, err := gc.RunService.Get(c.Param("id"))
	if err != nil {
		return respondRunError(c, err)
	}

	meta := selector(&runFiles{
		filtered:  run.FilteredInputFile,
		discarded: run.DiscardedInputFile,
		output:    run.OutputFile,
	})
	if meta == nil {
		// the run hasn't produced this file yet, or it has been reclaimed
		return c.JSON(http.StatusNotFound,
			dtoErrors.CreateSimpleNotFound("This run has no such file!"))
	}

	blob, openErr := gc.FileStore.Open(meta.Id)
	if openErr != nil {
		return c.JSON(http.StatusNotFound,
			dtoErrors.CreateSimpleNotFound("The stored file could not be opened!"))
	}
	defer blob.Close()

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", meta.Filename))

	return c.Stream(http.StatusOK, "application/octet-stream", blob)
}

func respondRunError(c echo.Context, err error) error {
	var transitionErr *runsService.TransitionError

	switch {
	case errors.Is(err, repositories.ErrRunNotFound):
		return c.JSON(http.StatusNotFound,
			dtoErrors.CreateSimpleNotFound("No run with that id was found!"))
	case errors.As(err, &transitionErr):
		return c.JSON(http.StatusConflict, dtoErrors.CreateSimpleConflict(transitionErr.Error()))
	case errors.Is(err, repositories.ErrVersionConflict):
		return c.JSON(http.StatusConflict,
			dtoErrors.CreateSimpleConflict("The run was modified concurrently.. Please re-query the run!"))
	default:
		fmt.Printf("Unexpected error: %s\n", err)
		return c.JSON(http.StatusInternalServerError,
			dtoErrors.CreateSimpleInternalServerError("Something went wrong.. Please contact the administrator!"))
	}
}

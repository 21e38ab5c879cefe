package dtos

import (
	"time"

	"gavin/api/models/constants"
	"gavin/api/models/runs"
)

type UploadResponseDTO struct {
	Id       string              `json:"id"`
	Filename string              `json:"filename"`
	Status   constants.RunStatus `json:"status"`
	Message  string              `json:"message"`
}

type RunResponseDTO struct {
	Id            string `json:"id"`
	InputFileName string `json:"inputFileName"`

	FilteredInputUrl  string `json:"filteredInputUrl,omitempty"`
	DiscardedInputUrl string `json:"discardedInputUrl,omitempty"`
	OutputUrl         string `json:"outputUrl,omitempty"`

	Log    string              `json:"log,omitempty"`
	Status constants.RunStatus `json:"status"`

	SubmittedAt time.Time  `json:"submittedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

func NewRunResponseDTO(run *runs.Run) RunResponseDTO {
	dto := RunResponseDTO{
		Id:            run.Id,
		InputFileName: run.InputFileName,
		Log:           run.Log,
		Status:        run.Status,
		SubmittedAt:   run.SubmittedAt,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
	}

	if run.FilteredInputFile != nil {
		dto.FilteredInputUrl = run.FilteredInputFile.Url
	}
	if run.DiscardedInputFile != nil {
		dto.DiscardedInputUrl = run.DiscardedInputFile.Url
	}
	if run.OutputFile != nil {
		dto.OutputUrl = run.OutputFile.Url
	}

	return dto
}

// -- generic error response shapes

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}

type GeneralError struct {
	Message string `json:"message"`
}

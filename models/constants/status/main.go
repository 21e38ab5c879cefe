package status

import (
	"strings"

	"gavin/api/models/constants"
)

const (
	Unknown constants.RunStatus = "UNKNOWN"

	Pending constants.RunStatus = "PENDING"
	Running constants.RunStatus = "RUNNING"
	Success constants.RunStatus = "SUCCESS"
	Failed  constants.RunStatus = "FAILED"
)

func CastToRunStatus(text string) constants.RunStatus {
	switch strings.ToUpper(text) {
	case "PENDING":
		return Pending
	case "RUNNING":
		return Running
	case "SUCCESS":
		return Success
	case "FAILED":
		return Failed
	default:
		return Unknown
	}
}

func IsTerminal(s constants.RunStatus) bool {
	return s == Success || s == Failed
}

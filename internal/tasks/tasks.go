package tasks

// Defines constants for task types used in Asynq.

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TypeAnalysisRun is the task type for a full KB analysis run.
	TypeAnalysisRun = "analysis:run"
)

// AnalysisRunPayload is the payload of a TypeAnalysisRun task.
type AnalysisRunPayload struct {
	RequestedBy string `json:"requested_by"`
}

// NewAnalysisRunTask builds an asynq task that triggers a background KB
// analysis run.
func NewAnalysisRunTask(requestedBy string) (*asynq.Task, error) {
	payload, err := json.Marshal(AnalysisRunPayload{RequestedBy: requestedBy})
	if err != nil {
		return nil, fmt.Errorf("marshal analysis run payload: %w", err)
	}
	return asynq.NewTask(TypeAnalysisRun, payload), nil
}

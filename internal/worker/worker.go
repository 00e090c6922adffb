package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"kbaudit/internal/services"
	"kbaudit/internal/tasks"
)

// AnalysisDeps bundles the services a background analysis run needs.
type AnalysisDeps struct {
	Analysis *services.AnalysisService
	Report   *services.ReportService
}

// RegisterHandlers wires all background task handlers into the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps AnalysisDeps) {
	mux.HandleFunc(tasks.TypeAnalysisRun, HandleAnalysisRun(deps))
}

// HandleAnalysisRun runs a full KB analysis and persists the report, exactly
// like the foreground analyze command.
func HandleAnalysisRun(deps AnalysisDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.AnalysisRunPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// A malformed payload will never become valid on retry.
			return fmt.Errorf("unmarshal analysis run payload: %v: %w", err, asynq.SkipRetry)
		}

		log.Infof("Background analysis run started (requested by %q)", payload.RequestedBy)
		started := time.Now().UTC()

		report, err := deps.Analysis.Run(ctx)
		if err != nil {
			return fmt.Errorf("analysis run: %w", err)
		}
		if err := deps.Report.Write(report); err != nil {
			return err
		}
		deps.Report.Record(ctx, report, started, time.Now().UTC())

		log.Infof("Background analysis run %s finished: %d documents, %d bucket entries",
			report.RunID, report.Total, report.Flagged())
		return nil
	}
}

package apihandlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"kbaudit/internal/models"
	"kbaudit/internal/store"
)

// APIHandler serves read-only analysis artifacts: the latest report file and
// the local run history.
type APIHandler struct {
	reportPath string
	history    store.RunHistoryStore
}

func NewAPIHandler(reportPath string, history store.RunHistoryStore) *APIHandler {
	return &APIHandler{reportPath: reportPath, history: history}
}

// GetLatestReportHandler returns the most recently written analysis report.
func (h *APIHandler) GetLatestReportHandler(c *gin.Context) {
	data, err := os.ReadFile(h.reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			respondError(c, http.StatusNotFound, "no analysis report has been generated yet")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to read report: "+err.Error())
		return
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to parse report: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListRunsHandler returns past analysis runs, newest first.
func (h *APIHandler) ListRunsHandler(c *gin.Context) {
	if h.history == nil {
		respondError(c, http.StatusServiceUnavailable, "run history is not configured")
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.history.ListRuns(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list runs: "+err.Error())
		return
	}
	if runs == nil {
		runs = []models.RunSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

package assess

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tmcf/custaudit/internal/repository"
)

// ListRunsHandler serves stored run summaries. Responds 404 when run history
// is not enabled.
func ListRunsHandler(runs repository.AuditRunRepository, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runs == nil {
			http.Error(w, "run history is not enabled", http.StatusNotFound)
			return
		}

		limit, offset := pageParams(r)
		list, err := runs.ListRuns(r.Context(), limit, offset)
		if err != nil {
			logger.WithError(err).Error("failed to list runs")
			http.Error(w, "failed to list runs", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// ListRunIssuesHandler serves the row issues recorded for one run, addressed
// by the {id} URL parameter.
func ListRunIssuesHandler(runs repository.AuditRunRepository, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runs == nil {
			http.Error(w, "run history is not enabled", http.StatusNotFound)
			return
		}

		runID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid run id", http.StatusBadRequest)
			return
		}

		limit, offset := pageParams(r)
		issues, err := runs.ListIssues(r.Context(), runID, limit, offset)
		if err != nil {
			logger.WithError(err).WithField("runId", runID).Error("failed to list run issues")
			http.Error(w, "failed to list run issues", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, issues)
	}
}

func pageParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

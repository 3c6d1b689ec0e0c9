// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/taskhub/internal/app/store/queries/analytics"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /api/analytics/ report.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeReport computes the aggregate report: per-collection totals, task
// status and priority distributions, the trailing-week task count, and the
// top task authors. The report is a snapshot assembled from independent
// queries; no cross-collection consistency is implied.
//
// Response: { "status":"success", "analytics":{...} }
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	report, err := analytics.BuildReport(ctx, h.DB, time.Now())
	if err != nil {
		h.Log.Error("analytics report failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpjson.Success(w, map[string]any{
		"analytics": report,
	})
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=events_test

type service interface {
	AddWeightReport(ctx context.Context, wr WeightReport) (int, error)
}

type Handler struct {
	service service
	// onWeightReport runs after a report is stored, e.g. to drop cached summaries
	onWeightReport func()
}

func NewHandler(service service, onWeightReport func()) *Handler {
	return &Handler{
		service:        service,
		onWeightReport: onWeightReport,
	}
}

func (h *Handler) HandleAddWeightReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.new.weightreport")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var weightReport WeightReport
	if err := json.NewDecoder(r.Body).Decode(&weightReport); err != nil {
		log.Tracef("new weight report, unmarshal json params: %s", err)
		http.Error(w, "add weight report failed", http.StatusBadRequest)
		return
	}
	if weightReport.Weight <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}
	if weightReport.Timestamp.IsZero() {
		weightReport.Timestamp = time.Now()
	}

	id, err := h.service.AddWeightReport(ctx, weightReport)
	if errors.Is(err, ErrDuplicateEvent) {
		http.Error(w, "weight already reported for this timestamp", http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("new weight report: %s", err)
		http.Error(w, "add weight report failed", http.StatusInternalServerError)
		return
	}
	weightReport.ID = id

	if h.onWeightReport != nil {
		h.onWeightReport()
	}

	pkg.WriteJSON(w, weightReport, http.StatusCreated)
}

package exercises

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftstats/internal/gymstats/calendar"
	"github.com/2beens/liftstats/internal/gymstats/milestones"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type StatsHandler struct {
	analyzer     *Analyzer
	defaultSteps uint32
	// maxMilestones bounds how many ticks a single request may ask for
	maxMilestones uint32
	// now is only read when a request carries no "today" parameter
	now func() time.Time
}

func NewStatsHandler(analyzer *Analyzer, defaultSteps, maxMilestones uint32) *StatsHandler {
	return &StatsHandler{
		analyzer:      analyzer,
		defaultSteps:  defaultSteps,
		maxMilestones: maxMilestones,
		now:           time.Now,
	}
}

type CalendarResponse struct {
	Scope      string          `json:"scope"`
	Offset     string          `json:"offset"`
	Window     calendar.Window `json:"window"`
	Weeks      int             `json:"weeks"`
	WeekStarts []time.Time     `json:"weekStarts"`
}

type MilestonesResponse struct {
	Start      uint32   `json:"start"`
	End        uint32   `json:"end"`
	Steps      uint32   `json:"steps"`
	Milestones []uint32 `json:"milestones"`
}

func (handler *StatsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.summary")
	defer span.End()

	params, ok := exerciseParamsFromVars(w, r)
	if !ok {
		return
	}
	today, ok := handler.today(w, r)
	if !ok {
		return
	}

	summary, err := handler.analyzer.Summary(ctx, params, today)
	if err != nil {
		log.Errorf("failed to get summary [%s] [%s]: %s", params.MuscleGroup, params.ExerciseID, err)
		http.Error(w, "failed to get exercise summary", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (handler *StatsHandler) HandleMaxWeightChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.chart")
	defer span.End()

	params, ok := exerciseParamsFromVars(w, r)
	if !ok {
		return
	}
	steps, err := parseUint32Or(r.URL.Query().Get("steps"), handler.defaultSteps)
	if err != nil {
		http.Error(w, "invalid steps parameter", http.StatusBadRequest)
		return
	}
	if steps > handler.maxMilestones {
		http.Error(w, fmt.Sprintf("steps must not exceed %d", handler.maxMilestones), http.StatusBadRequest)
		return
	}

	chart, err := handler.analyzer.MaxWeightChart(ctx, params, steps)
	if err != nil {
		log.Errorf("failed to get max weight chart [%s] [%s]: %s", params.MuscleGroup, params.ExerciseID, err)
		http.Error(w, "failed to get max weight chart", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, chart, http.StatusOK)
}

func (handler *StatsHandler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.heatmap")
	defer span.End()

	params, ok := exerciseParamsFromVars(w, r)
	if !ok {
		return
	}
	scope, offset, ok := scopeAndOffsetFromVars(w, r)
	if !ok {
		return
	}
	today, ok := handler.today(w, r)
	if !ok {
		return
	}

	heatmap, err := handler.analyzer.Heatmap(ctx, params, today, scope, offset)
	if err != nil {
		log.Errorf("failed to get heatmap [%s] [%s]: %s", params.MuscleGroup, params.ExerciseID, err)
		http.Error(w, "failed to get heatmap", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, heatmap, http.StatusOK)
}

func (handler *StatsHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.calendar")
	defer span.End()

	scope, offset, ok := scopeAndOffsetFromVars(w, r)
	if !ok {
		return
	}
	today, ok := handler.today(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("today", today.Format(pkg.DateLayout)))

	window := calendar.WindowFor(today, scope, offset)
	weekStarts := make([]time.Time, 0, window.Weeks())
	for monday := calendar.MondayOfWeek(window.Start); !monday.After(window.End); monday = monday.AddDate(0, 0, 7) {
		weekStarts = append(weekStarts, monday)
	}

	pkg.WriteJSON(w, CalendarResponse{
		Scope:      scope.String(),
		Offset:     offset.String(),
		Window:     window,
		Weeks:      window.Weeks(),
		WeekStarts: weekStarts,
	}, http.StatusOK)
}

func (handler *StatsHandler) HandleMilestones(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.milestones")
	defer span.End()

	query := r.URL.Query()
	if query.Get("start") == "" || query.Get("end") == "" {
		http.Error(w, "start and end parameters are required", http.StatusBadRequest)
		return
	}
	start, err := parseUint32Or(query.Get("start"), 0)
	if err != nil {
		http.Error(w, "invalid start parameter", http.StatusBadRequest)
		return
	}
	end, err := parseUint32Or(query.Get("end"), 0)
	if err != nil {
		http.Error(w, "invalid end parameter", http.StatusBadRequest)
		return
	}
	steps, err := parseUint32Or(query.Get("steps"), handler.defaultSteps)
	if err != nil {
		http.Error(w, "invalid steps parameter", http.StatusBadRequest)
		return
	}
	if count := milestones.Count(start, end, steps); count > uint64(handler.maxMilestones) {
		log.Debugf("milestones request too large: start=%d end=%d steps=%d count=%d", start, end, steps, count)
		http.Error(w, fmt.Sprintf("too many milestones requested, max is %d", handler.maxMilestones), http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, MilestonesResponse{
		Start:      start,
		End:        end,
		Steps:      steps,
		Milestones: milestones.WeightMilestones(start, end, steps),
	}, http.StatusOK)
}

func (handler *StatsHandler) today(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	today, err := pkg.ParseDateOr(r.URL.Query().Get("today"), handler.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return time.Time{}, false
	}
	return today, true
}

func exerciseParamsFromVars(w http.ResponseWriter, r *http.Request) (ExerciseParams, bool) {
	vars := mux.Vars(r)
	exerciseID := vars["exid"]
	muscleGroup := vars["mgroup"]
	if exerciseID == "" || muscleGroup == "" {
		http.Error(w, "error, exercise id or muscle group empty", http.StatusBadRequest)
		return ExerciseParams{}, false
	}
	return ExerciseParams{
		ExerciseID:  exerciseID,
		MuscleGroup: muscleGroup,
	}, true
}

func scopeAndOffsetFromVars(w http.ResponseWriter, r *http.Request) (calendar.Scope, calendar.Offset, bool) {
	vars := mux.Vars(r)
	scope, err := calendar.ParseScope(vars["scope"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	offset, err := calendar.ParseOffset(vars["offset"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	return scope, offset, true
}

func parseUint32Or(value string, fallback uint32) (uint32, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

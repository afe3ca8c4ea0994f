package mcp

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server with the gymstats tools. The backend mounts it at
// /mcp over HTTP and cmd/gymstats_mcp serves it over stdio.
func NewServer(pool *pgxpool.Pool, analyzer summaryAnalyzer, defaultSteps, maxMilestones uint32) *mcp.Server {
	return newServer(NewContextService(NewPoolSchemaRepo(pool), analyzer), defaultSteps, maxMilestones)
}

func newServer(svc contextService, defaultSteps, maxMilestones uint32) *mcp.Server {
	h := NewHandler(svc, defaultSteps, maxMilestones)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "liftstats",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_gymstats_schema",
		Description: "Returns the DB schema of the exercise and gymstats_event tables: columns, types, nullable, default.",
	}, h.GetGymstatsSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_summary",
		Description: "Returns all-time stats for one exercise: total lifted weight, reps, sets, weight personal record, the heaviest set (date and kilos) and the max weight per training day. Args: exercise_id, muscle_group; optional: today (YYYY-MM-DD).",
	}, h.GetExerciseSummaryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_calendar_window",
		Description: "Returns the first and last day of a calendar window (year, month or Monday-based week) relative to today, plus how many weeks it touches. Args: scope, offset (current, previous, before_previous); optional: today (YYYY-MM-DD).",
	}, h.GetCalendarWindowTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weight_milestones",
		Description: "Returns evenly spaced integer weight ticks between start and end (both included), as used for chart axes. Args: start, end; optional: steps. Requests producing more values than the server limit are rejected.",
	}, h.GetWeightMilestonesTool())

	return s
}

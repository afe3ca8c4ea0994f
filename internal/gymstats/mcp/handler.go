package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/liftstats/internal/gymstats/calendar"
	"github.com/2beens/liftstats/internal/gymstats/milestones"
	"github.com/2beens/liftstats/pkg"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler parses tool input, calls the service and wraps the result as MCP content.
type Handler struct {
	service       contextService
	defaultSteps  uint32
	maxMilestones uint32
	now           func() time.Time
}

func NewHandler(service contextService, defaultSteps, maxMilestones uint32) *Handler {
	return &Handler{
		service:       service,
		defaultSteps:  defaultSteps,
		maxMilestones: maxMilestones,
		now:           time.Now,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetGymstatsSchemaTool returns the MCP tool handler for get_gymstats_schema.
func (h *Handler) GetGymstatsSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// ExerciseSummaryInput is the input for get_exercise_summary.
type ExerciseSummaryInput struct {
	ExerciseID  string `json:"exercise_id" jsonschema:"Exercise id (e.g. bench_press)"`
	MuscleGroup string `json:"muscle_group" jsonschema:"Muscle group (e.g. chest, legs)"`
	Today       string `json:"today,omitempty" jsonschema:"Reference day (YYYY-MM-DD), defaults to the current date"`
}

// GetExerciseSummaryTool returns the MCP tool handler for get_exercise_summary.
func (h *Handler) GetExerciseSummaryTool() func(context.Context, *mcp.CallToolRequest, ExerciseSummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseSummaryInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseID == "" || in.MuscleGroup == "" {
			return errorResult("exercise_id and muscle_group are required"), nil, nil
		}
		today, err := pkg.ParseDateOr(in.Today, h.now())
		if err != nil {
			return errorResult("Invalid today: use YYYY-MM-DD"), nil, nil
		}

		summary, err := h.service.GetExerciseSummary(ctx, in.ExerciseID, in.MuscleGroup, today)
		if err != nil {
			return errorResult("Error getting exercise summary: " + err.Error()), nil, nil
		}
		return jsonResult(summary), nil, nil
	}
}

// CalendarWindowInput is the input for get_calendar_window.
type CalendarWindowInput struct {
	Scope  string `json:"scope" jsonschema:"One of: year, month, week"`
	Offset string `json:"offset" jsonschema:"One of: current, previous, before_previous"`
	Today  string `json:"today,omitempty" jsonschema:"Reference day (YYYY-MM-DD), defaults to the current date"`
}

// GetCalendarWindowTool returns the MCP tool handler for get_calendar_window.
func (h *Handler) GetCalendarWindowTool() func(context.Context, *mcp.CallToolRequest, CalendarWindowInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in CalendarWindowInput) (*mcp.CallToolResult, any, error) {
		scope, err := calendar.ParseScope(in.Scope)
		if err != nil {
			return errorResult("Invalid scope: use year, month or week"), nil, nil
		}
		offset, err := calendar.ParseOffset(in.Offset)
		if err != nil {
			return errorResult("Invalid offset: use current, previous or before_previous"), nil, nil
		}
		today, err := pkg.ParseDateOr(in.Today, h.now())
		if err != nil {
			return errorResult("Invalid today: use YYYY-MM-DD"), nil, nil
		}
		return jsonResult(h.service.GetCalendarWindow(today, scope, offset)), nil, nil
	}
}

// WeightMilestonesInput is the input for get_weight_milestones.
type WeightMilestonesInput struct {
	Start uint32 `json:"start" jsonschema:"Lowest weight in kilos"`
	End   uint32 `json:"end" jsonschema:"Highest weight in kilos"`
	Steps uint32 `json:"steps,omitempty" jsonschema:"Number of milestones, defaults to the server setting"`
}

// GetWeightMilestonesTool returns the MCP tool handler for get_weight_milestones.
func (h *Handler) GetWeightMilestonesTool() func(context.Context, *mcp.CallToolRequest, WeightMilestonesInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in WeightMilestonesInput) (*mcp.CallToolResult, any, error) {
		steps := in.Steps
		if steps == 0 {
			steps = h.defaultSteps
		}
		if milestones.Count(in.Start, in.End, steps) > uint64(h.maxMilestones) {
			return errorResult(fmt.Sprintf("Too many milestones requested: at most %d values per call", h.maxMilestones)), nil, nil
		}
		return jsonResult(h.service.GetWeightMilestones(in.Start, in.End, steps)), nil, nil
	}
}

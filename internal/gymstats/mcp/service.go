package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/liftstats/internal/gymstats/calendar"
	"github.com/2beens/liftstats/internal/gymstats/exercises"
	"github.com/2beens/liftstats/internal/gymstats/milestones"
	"github.com/2beens/liftstats/internal/gymstats/stats"
)

type summaryAnalyzer interface {
	Summary(ctx context.Context, params exercises.ExerciseParams, today time.Time) (*stats.Summary, error)
}

// contextService is what the tool handlers need; the tests swap it for a fake.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetExerciseSummary(ctx context.Context, exerciseID, muscleGroup string, today time.Time) (*stats.Summary, error)
	GetCalendarWindow(today time.Time, scope calendar.Scope, offset calendar.Offset) CalendarWindow
	GetWeightMilestones(start, end, steps uint32) []uint32
}

type CalendarWindow struct {
	Scope  string    `json:"scope"`
	Offset string    `json:"offset"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Weeks  int       `json:"weeks"`
}

type ContextService struct {
	schema   SchemaRepo
	analyzer summaryAnalyzer
}

func NewContextService(schemaRepo SchemaRepo, analyzer summaryAnalyzer) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		analyzer: analyzer,
	}
}

// GetSchema returns the exercise and gymstats_event tables as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetGymstatsColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatGymstatsSchema(cols), nil
}

func formatGymstatsSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Gymstats DB Schema\n\nNo gymstats tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Gymstats DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(tableOrder, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## " + tableName + "\n\n")
		b.WriteString("| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) GetExerciseSummary(ctx context.Context, exerciseID, muscleGroup string, today time.Time) (*stats.Summary, error) {
	return s.analyzer.Summary(ctx, exercises.ExerciseParams{
		ExerciseID:  exerciseID,
		MuscleGroup: muscleGroup,
	}, today)
}

func (s *ContextService) GetCalendarWindow(today time.Time, scope calendar.Scope, offset calendar.Offset) CalendarWindow {
	w := calendar.WindowFor(today, scope, offset)
	return CalendarWindow{
		Scope:  scope.String(),
		Offset: offset.String(),
		Start:  w.Start,
		End:    w.End,
		Weeks:  w.Weeks(),
	}
}

func (s *ContextService) GetWeightMilestones(start, end, steps uint32) []uint32 {
	return milestones.WeightMilestones(start, end, steps)
}

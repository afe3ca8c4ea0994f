package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftstats/internal/gymstats/training"
	"github.com/2beens/liftstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=events_test

type eventsRepo interface {
	Add(ctx context.Context, event Event) (*Event, error)
	Latest(ctx context.Context, eventType EventType) (*Event, error)
}

type Service struct {
	repo eventsRepo
}

func NewService(repo eventsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddWeightReport(ctx context.Context, wr WeightReport) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.events.add.weightreport")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if wr.Weight <= 0 {
		return 0, fmt.Errorf("invalid weight: %v", wr.Weight)
	}

	event, err := s.repo.Add(ctx, NewWeightReportEvent(wr))
	if err != nil {
		return 0, fmt.Errorf("add weight report event: %w", err)
	}
	return event.ID, nil
}

// LatestWeight returns the most recently reported body weight, rounded to
// hundredths of a kilo, or training.DefaultUserWeight when nothing was reported yet.
func (s *Service) LatestWeight(ctx context.Context) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.events.latestweight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	event, err := s.repo.Latest(ctx, EventTypeWeightReport)
	if errors.Is(err, ErrEventNotFound) {
		return training.DefaultUserWeight, nil
	}
	if err != nil {
		return 0, fmt.Errorf("latest weight report: %w", err)
	}

	wr, err := WeightReportFromEvent(*event)
	if err != nil {
		log.Warnf("ignoring malformed weight report %d: %s", event.ID, err)
		return training.DefaultUserWeight, nil
	}
	return training.RoundKilos(wr.Weight), nil
}

package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/liftstats/internal/gymstats/events"
	"github.com/2beens/liftstats/internal/gymstats/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_AddWeightReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockeventsRepo(ctrl)
	s := events.NewService(repo)

	ts := time.Date(2025, 11, 3, 7, 30, 0, 0, time.UTC)
	repo.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e events.Event) (*events.Event, error) {
			assert.Equal(t, events.EventTypeWeightReport, e.Type)
			assert.Equal(t, ts, e.Timestamp)
			assert.Equal(t, "81.35", e.Data["weight"])
			e.ID = 3
			return &e, nil
		})

	id, err := s.AddWeightReport(context.Background(), events.WeightReport{Timestamp: ts, Weight: 81.35})
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	_, err = s.AddWeightReport(context.Background(), events.WeightReport{Timestamp: ts})
	assert.Error(t, err)
}

func TestService_LatestWeight(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockeventsRepo(ctrl)
	s := events.NewService(repo)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().Latest(gomock.Any(), events.EventTypeWeightReport).Return(nil, events.ErrEventNotFound),
		repo.EXPECT().Latest(gomock.Any(), events.EventTypeWeightReport).Return(&events.Event{
			ID:   1,
			Type: events.EventTypeWeightReport,
			Data: map[string]string{"weight": "80.456"},
		}, nil),
		repo.EXPECT().Latest(gomock.Any(), events.EventTypeWeightReport).Return(&events.Event{
			ID:   2,
			Type: events.EventTypeWeightReport,
			Data: map[string]string{"weight": "heavy"},
		}, nil),
		repo.EXPECT().Latest(gomock.Any(), events.EventTypeWeightReport).Return(nil, errors.New("db down")),
	)

	w, err := s.LatestWeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, training.DefaultUserWeight, w)

	w, err = s.LatestWeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80.46, w)

	w, err = s.LatestWeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, training.DefaultUserWeight, w)

	_, err = s.LatestWeight(ctx)
	assert.Error(t, err)
}

func TestWeightReportFromEvent(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	wr, err := events.WeightReportFromEvent(events.NewWeightReportEvent(events.WeightReport{ID: 4, Timestamp: ts, Weight: 79.5}))
	require.NoError(t, err)
	assert.Equal(t, events.WeightReport{ID: 4, Timestamp: ts, Weight: 79.5}, wr)

	_, err = events.WeightReportFromEvent(events.Event{Type: "pain_report"})
	assert.ErrorIs(t, err, events.ErrUnexpectedEventType)
}

//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/liftstats/internal/gymstats/events"
	"github.com/2beens/liftstats/internal/gymstats/exercises"
	"github.com/2beens/liftstats/internal/gymstats/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllGymstats() {
	_, err := s.DB.Exec("DELETE FROM exercise")
	require.NoError(s.T(), err)
	_, err = s.DB.Exec("DELETE FROM gymstats_event")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path string,
	body any,
) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) addExercise(ctx context.Context, exercise exercises.Exercise) exercises.Exercise {
	status, respBytes := s.doRequest(ctx, http.MethodPost, "/gymstats", exercise)
	require.Equal(s.T(), http.StatusCreated, status, string(respBytes))

	var added exercises.Exercise
	require.NoError(s.T(), json.Unmarshal(respBytes, &added))
	require.Positive(s.T(), added.ID)
	return added
}

func (s *IntegrationTestSuite) reportWeight(ctx context.Context, weight float64, ts time.Time) int {
	status, _ := s.doRequest(ctx, http.MethodPost, "/gymstats/events/report/weight", events.WeightReport{
		Timestamp: ts,
		Weight:    weight,
	})
	return status
}

func (s *IntegrationTestSuite) summary(ctx context.Context) stats.Summary {
	status, respBytes := s.doRequest(
		ctx, http.MethodGet,
		"/gymstats/exercise/bench/group/chest/summary?today=2025-11-10",
		nil,
	)
	require.Equal(s.T(), http.StatusOK, status, string(respBytes))

	var summary stats.Summary
	require.NoError(s.T(), json.Unmarshal(respBytes, &summary))
	return summary
}

func (s *IntegrationTestSuite) TestGymstats_SummaryFollowsBodyWeight() {
	ctx := context.Background()
	s.deleteAllGymstats()
	t := s.T()

	require.Equal(t, http.StatusCreated, s.reportWeight(ctx, 80, time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)))

	bw := map[string]string{exercises.MetadataBodyweight: "true"}
	for _, ex := range []exercises.Exercise{
		{Kilos: 60, Reps: 10, CreatedAt: time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC)},
		{Kilos: 80, Reps: 5, CreatedAt: time.Date(2025, 11, 3, 18, 10, 0, 0, time.UTC)},
		{Kilos: 10, Reps: 8, CreatedAt: time.Date(2025, 11, 5, 18, 0, 0, 0, time.UTC), Metadata: bw},
		{Kilos: 0, Reps: 10, CreatedAt: time.Date(2025, 11, 5, 18, 10, 0, 0, time.UTC), Metadata: bw},
	} {
		ex.ExerciseID = "bench"
		ex.MuscleGroup = "chest"
		s.addExercise(ctx, ex)
	}

	summary := s.summary(ctx)
	assert.Equal(t, 2520.0, summary.TotalLiftedWeight)
	assert.Equal(t, uint64(33), summary.TotalReps)
	assert.Equal(t, 4, summary.TotalSets)
	assert.Equal(t, 90.0, summary.PersonalRecord)
	assert.Equal(t, 2, summary.DaysTrained)

	// a new weight report drops the cached summaries
	require.Equal(t, http.StatusCreated, s.reportWeight(ctx, 90, time.Date(2025, 11, 6, 8, 0, 0, 0, time.UTC)))
	summary = s.summary(ctx)
	assert.Equal(t, 2700.0, summary.TotalLiftedWeight)
	assert.Equal(t, 100.0, summary.PersonalRecord)

	// same timestamp twice
	assert.Equal(t, http.StatusConflict, s.reportWeight(ctx, 91, time.Date(2025, 11, 6, 8, 0, 0, 0, time.UTC)))
}

func (s *IntegrationTestSuite) TestGymstats_AddAndDelete() {
	ctx := context.Background()
	s.deleteAllGymstats()
	t := s.T()

	added := s.addExercise(ctx, exercises.Exercise{
		ExerciseID:  "squat",
		MuscleGroup: "legs",
		Kilos:       100,
		Reps:        5,
		CreatedAt:   time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC),
	})

	status, _ := s.doRequest(ctx, http.MethodGet, "/gymstats/exercise/squat/group/legs/summary?today=2025-11-10", nil)
	require.Equal(t, http.StatusOK, status)

	status, respBytes := s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/gymstats/%d", added.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var deleted exercises.DeleteExerciseResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleted))
	assert.Equal(t, added.ID, deleted.DeletedID)

	status, _ = s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/gymstats/%d", added.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, respBytes = s.doRequest(ctx, http.MethodGet, "/gymstats/exercise/squat/group/legs/summary?today=2025-11-10", nil)
	require.Equal(t, http.StatusOK, status)
	var summary stats.Summary
	require.NoError(t, json.Unmarshal(respBytes, &summary))
	assert.Zero(t, summary.TotalSets)

	status, _ = s.doRequest(ctx, http.MethodPost, "/gymstats", exercises.Exercise{
		ExerciseID:  "squat",
		MuscleGroup: "legs",
		Kilos:       -1,
		Reps:        5,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestGymstats_CalendarAndMilestones() {
	ctx := context.Background()
	t := s.T()

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/gymstats/calendar/month/current?today=2026-01-01", nil)
	require.Equal(t, http.StatusOK, status, string(respBytes))
	var cal exercises.CalendarResponse
	require.NoError(t, json.Unmarshal(respBytes, &cal))
	assert.Equal(t, "month", cal.Scope)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), cal.Window.Start)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), cal.Window.End)
	assert.Equal(t, 5, cal.Weeks)
	assert.Len(t, cal.WeekStarts, 5)

	status, _ = s.doRequest(ctx, http.MethodGet, "/gymstats/calendar/decade/current", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, respBytes = s.doRequest(ctx, http.MethodGet, "/gymstats/milestones?start=0&end=100&steps=3", nil)
	require.Equal(t, http.StatusOK, status)
	var ms exercises.MilestonesResponse
	require.NoError(t, json.Unmarshal(respBytes, &ms))
	assert.Equal(t, []uint32{0, 50, 100}, ms.Milestones)
}

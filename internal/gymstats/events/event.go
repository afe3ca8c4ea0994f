package events

import (
	"strconv"
	"time"
)

// WeightReport is the user's body weight at a point in time, sent by the app.
// The latest report resolves bodyweight sets to kilos.
type WeightReport struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
}

// Event is the DB level type stored in gymstats_event.
type Event struct {
	ID        int               `json:"id"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func NewWeightReportEvent(wr WeightReport) Event {
	return Event{
		ID:        wr.ID,
		Type:      EventTypeWeightReport,
		Timestamp: wr.Timestamp,
		Data: map[string]string{
			"weight": strconv.FormatFloat(wr.Weight, 'f', -1, 64),
		},
	}
}

// WeightReportFromEvent reads the weight back out of a stored weight_report event.
func WeightReportFromEvent(e Event) (WeightReport, error) {
	if e.Type != EventTypeWeightReport {
		return WeightReport{}, ErrUnexpectedEventType
	}
	w, err := strconv.ParseFloat(e.Data["weight"], 64)
	if err != nil {
		return WeightReport{}, err
	}
	return WeightReport{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Weight:    w,
	}, nil
}

type EventType string

const (
	EventTypeWeightReport EventType = "weight_report"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	return et == EventTypeWeightReport
}

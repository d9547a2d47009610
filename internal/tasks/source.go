// Package tasks supplies task records from external providers and keeps them
// synced into the session store on a schedule.
package tasks

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/dayplan/models"
)

// SampleSource stands in for a real task provider integration. Task ids are
// stable so repeated syncs upsert instead of duplicating.
type SampleSource struct {
	now func() time.Time
}

// NewSampleSource returns a source producing the built-in example tasks.
func NewSampleSource() *SampleSource {
	return &SampleSource{now: time.Now}
}

// FetchTasks returns the example task set dated today and tomorrow.
func (s *SampleSource) FetchTasks(ctx context.Context) ([]models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	today := models.Day(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	return []models.Task{
		{ID: "sample-design-review", Title: "Review system design doc", DueDate: &today, Status: models.TaskStatusNotStarted, Source: "sample"},
		{ID: "sample-morning-reflection", Title: "Write morning reflection", DueDate: &today, Status: models.TaskStatusNotStarted, Source: "sample"},
		{ID: "sample-week-priorities", Title: "Plan next week's priorities", DueDate: &tomorrow, Status: models.TaskStatusNotStarted, Source: "sample"},
	}, nil
}

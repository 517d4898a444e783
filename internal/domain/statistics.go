package domain

import "context"

// Statistics holds dashboard document counts.
type Statistics struct {
	Applications int64 `json:"applications"`
	Services     int64 `json:"services"`
	Careers      int64 `json:"careers"`
}

// StatisticsUsecase is a read-only fan-out over the repositories.
type StatisticsUsecase interface {
	Snapshot(ctx context.Context) (*Statistics, error)
}

package usecase

import (
	"context"

	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"

	"golang.org/x/sync/errgroup"
)

type statisticsUsecase struct {
	applicationRepo domain.ApplicationRepository
	serviceRepo     domain.ServiceRepository
	careerRepo      domain.CareerRepository
}

// NewStatisticsUsecase creates the dashboard statistics aggregator.
func NewStatisticsUsecase(
	appRepo domain.ApplicationRepository,
	serviceRepo domain.ServiceRepository,
	careerRepo domain.CareerRepository,
) domain.StatisticsUsecase {
	return &statisticsUsecase{
		applicationRepo: appRepo,
		serviceRepo:     serviceRepo,
		careerRepo:      careerRepo,
	}
}

// Snapshot counts the three collections concurrently. Any failing count
// fails the snapshot; partial numbers would mislead the dashboard.
func (uc *statisticsUsecase) Snapshot(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.applicationRepo.Count(ctx)
		stats.Applications = n
		return err
	})
	g.Go(func() error {
		n, err := uc.serviceRepo.Count(ctx)
		stats.Services = n
		return err
	})
	g.Go(func() error {
		n, err := uc.careerRepo.Count(ctx)
		stats.Careers = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}
	return &stats, nil
}

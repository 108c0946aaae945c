package services

import (
	"context"

	"hospital-queue/internal/models"
	"hospital-queue/internal/repository"
	"hospital-queue/internal/stats"
)

// StatisticsService loads rows through the repositories and hands them to
// the stats reducers.
type StatisticsService struct {
	clinics *repository.Clinics
	queues  *repository.Queues
	visits  *repository.Visits
}

func NewStatisticsService(clinics *repository.Clinics, queues *repository.Queues, visits *repository.Visits) *StatisticsService {
	return &StatisticsService{clinics: clinics, queues: queues, visits: visits}
}

func (s *StatisticsService) allVisits(ctx context.Context) ([]models.VisitHistory, error) {
	return s.visits.List(ctx, models.VisitFilter{})
}

func (s *StatisticsService) allQueues(ctx context.Context) ([]models.Queue, error) {
	return s.queues.List(ctx, repository.QueueFilter{})
}

func (s *StatisticsService) Financial(ctx context.Context) (*stats.Financial, error) {
	visits, err := s.allVisits(ctx)
	if err != nil {
		return nil, err
	}
	out := stats.FinancialSummary(visits)
	return &out, nil
}

func (s *StatisticsService) Operational(ctx context.Context) (*stats.Operational, error) {
	queues, err := s.allQueues(ctx)
	if err != nil {
		return nil, err
	}
	visits, err := s.allVisits(ctx)
	if err != nil {
		return nil, err
	}
	out := stats.OperationalSummary(queues, visits)
	return &out, nil
}

func (s *StatisticsService) Patients(ctx context.Context) (*stats.Patients, error) {
	visits, err := s.allVisits(ctx)
	if err != nil {
		return nil, err
	}
	out := stats.PatientSummary(visits)
	return &out, nil
}

// QueueDay summarizes the entries registered on date, or all entries when
// date is empty. A date that matches nothing yields an empty summary.
func (s *StatisticsService) QueueDay(ctx context.Context, date string) (*stats.QueueDay, error) {
	queues, err := s.allQueues(ctx)
	if err != nil {
		return nil, err
	}
	out := stats.QueueSummary(queues, date)
	return &out, nil
}

func (s *StatisticsService) ClinicDensity(ctx context.Context) ([]stats.ClinicDensity, error) {
	clinics, err := s.clinics.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	queues, err := s.allQueues(ctx)
	if err != nil {
		return nil, err
	}
	visits, err := s.allVisits(ctx)
	if err != nil {
		return nil, err
	}
	return stats.ClinicDensities(clinics, queues, visits), nil
}

// DailyVisits buckets visits dated within [start, end] by day. Both bounds
// are optional and compare lexically.
func (s *StatisticsService) DailyVisits(ctx context.Context, start, end string) ([]stats.DailyVisits, error) {
	visits, err := s.visits.List(ctx, models.VisitFilter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}
	return stats.DailyVisitCounts(visits), nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/schedule"
)

type DashboardService struct {
	goalRepo       repository.GoalRepository
	submissionRepo repository.SubmissionRepository
	clock          clock.Clock
}

func NewDashboardService(goalRepo repository.GoalRepository, submissionRepo repository.SubmissionRepository, clk clock.Clock) *DashboardService {
	return &DashboardService{
		goalRepo:       goalRepo,
		submissionRepo: submissionRepo,
		clock:          clk,
	}
}

// Progress summarizes a user's goals as of now.
func (s *DashboardService) Progress(ctx context.Context, userID string) (schedule.Progress, error) {
	return s.ProgressAt(ctx, userID, s.clock.Now())
}

// ProgressAt summarizes a user's goals as of the given instant.
func (s *DashboardService) ProgressAt(ctx context.Context, userID string, now time.Time) (schedule.Progress, error) {
	goals, err := s.goalRepo.Goals(userID, repository.GoalSortCreated)
	if err != nil {
		return schedule.Progress{}, fmt.Errorf("failed to load goals: %w", err)
	}

	subs, err := loadSubmissions(ctx, s.submissionRepo, goals)
	if err != nil {
		return schedule.Progress{}, err
	}

	return schedule.ComputeProgress(goals, func(goalID string) []model.ProofSubmission {
		return subs[goalID]
	}, now), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/metrics"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/schedule"
	"github.com/templui/proofstreak/internal/validation"
)

var (
	ErrGoalLimitReached = errors.New("plan goal limit reached")
	ErrInvalidGoal      = errors.New("invalid goal")
	ErrFrequencyLocked  = errors.New("frequency cannot change once a proof is verified or pending")
	ErrBreaksNotInPlan  = errors.New("breaks are not available on this plan")
)

// submissionLoadLimit bounds concurrent submission queries per request.
const submissionLoadLimit = 8

// GoalInput holds the fields for a new goal. Empty fields take defaults.
type GoalInput struct {
	Title        string
	Description  string
	Frequency    string
	ReminderTime string
	ReminderDay  *int
	GracePeriod  string
}

// GoalPatch changes only the non-nil fields.
type GoalPatch struct {
	Title        *string
	Description  *string
	Frequency    *string
	ReminderTime *string
	ReminderDay  *int
	GracePeriod  *string
}

// GoalView is a goal with its status at the instant it was loaded.
type GoalView struct {
	Goal   *model.Goal     `json:"goal" yaml:"goal"`
	Status schedule.Status `json:"status" yaml:"status"`
}

type GoalService struct {
	repo                repository.GoalRepository
	submissionRepo      repository.SubmissionRepository
	userRepo            repository.UserRepository
	fileService         *FileService
	subscriptionService *SubscriptionService
	emailService        *EmailService
	clock               clock.Clock
}

func NewGoalService(
	repo repository.GoalRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	fileService *FileService,
	subscriptionService *SubscriptionService,
	emailService *EmailService,
	clk clock.Clock,
) *GoalService {
	return &GoalService{
		repo:                repo,
		submissionRepo:      submissionRepo,
		userRepo:            userRepo,
		fileService:         fileService,
		subscriptionService: subscriptionService,
		emailService:        emailService,
		clock:               clk,
	}
}

func (s *GoalService) Create(userID string, in GoalInput) (*model.Goal, error) {
	subscription, err := s.subscriptionService.Subscription(userID)
	if err != nil {
		return nil, err
	}

	// Check goal limit based on plan
	limit := subscription.GoalLimit()
	if limit != -1 { // -1 means unlimited
		count, err := s.repo.CountUserGoals(userID)
		if err != nil {
			return nil, err
		}

		if count >= limit {
			return nil, ErrGoalLimitReached
		}
	}

	now := s.clock.Now()
	goal := &model.Goal{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Frequency:      in.Frequency,
		ReminderTime:   in.ReminderTime,
		ReminderDay:    model.DefaultReminderDay,
		GracePeriod:    in.GracePeriod,
		CompletedDates: model.DateSet{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if goal.Frequency == "" {
		goal.Frequency = model.FrequencyDaily
	}
	if goal.ReminderTime == "" {
		goal.ReminderTime = model.DefaultReminderTime
	}
	if goal.GracePeriod == "" {
		goal.GracePeriod = model.DefaultGracePeriod
	}
	if in.ReminderDay != nil {
		goal.ReminderDay = *in.ReminderDay
	}

	err = validateGoal(goal)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "goal_id", goal.ID, "user_id", userID, "frequency", goal.Frequency)
	return goal, nil
}

func validateGoal(goal *model.Goal) error {
	err := validation.ValidateTitle(goal.Title)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGoal, err)
	}
	err = validation.ValidateDescription(goal.Description)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGoal, err)
	}
	if !model.ValidFrequency(goal.Frequency) {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidGoal, goal.Frequency)
	}
	if _, _, ok := schedule.ParseReminderTime(goal.ReminderTime); !ok {
		return fmt.Errorf("%w: reminder time must be HH:MM", ErrInvalidGoal)
	}
	if goal.ReminderDay < 0 || goal.ReminderDay > 6 {
		return fmt.Errorf("%w: reminder day must be 0-6", ErrInvalidGoal)
	}
	if !model.ValidGracePeriod(goal.GracePeriod) {
		return fmt.Errorf("%w: unknown grace period %q", ErrInvalidGoal, goal.GracePeriod)
	}
	return nil
}

func (s *GoalService) Goal(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

// View loads a goal with its submissions and evaluates it at one instant.
func (s *GoalService) View(userID, goalID string) (*GoalView, error) {
	now := s.clock.Now()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissionRepo.ByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	return &GoalView{Goal: goal, Status: schedule.Evaluate(goal, subs, now)}, nil
}

// List evaluates every goal of a user against the same instant.
func (s *GoalService) List(ctx context.Context, userID, sortBy string) ([]GoalView, error) {
	now := s.clock.Now()

	goals, err := s.repo.Goals(userID, sortBy)
	if err != nil {
		return nil, err
	}

	subs, err := loadSubmissions(ctx, s.submissionRepo, goals)
	if err != nil {
		return nil, err
	}

	views := make([]GoalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, GoalView{Goal: goal, Status: schedule.Evaluate(goal, subs[goal.ID], now)})
	}
	return views, nil
}

// loadSubmissions fetches submissions for each goal concurrently.
func loadSubmissions(ctx context.Context, repo repository.SubmissionRepository, goals []*model.Goal) (map[string][]model.ProofSubmission, error) {
	results := make([][]model.ProofSubmission, len(goals))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(submissionLoadLimit)
	for i, goal := range goals {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			subs, err := repo.ByGoal(goal.ID)
			if err != nil {
				return fmt.Errorf("failed to load submissions for goal %s: %w", goal.ID, err)
			}
			results[i] = subs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byGoal := make(map[string][]model.ProofSubmission, len(goals))
	for i, goal := range goals {
		byGoal[goal.ID] = results[i]
	}
	return byGoal, nil
}

func (s *GoalService) Update(userID, goalID string, patch GoalPatch) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if patch.Frequency != nil && *patch.Frequency != goal.Frequency {
		counted, err := s.submissionRepo.CountUnrejected(goal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count submissions: %w", err)
		}
		if counted > 0 {
			return nil, ErrFrequencyLocked
		}
		goal.Frequency = *patch.Frequency
	}
	if patch.Title != nil {
		goal.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		goal.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.ReminderTime != nil {
		goal.ReminderTime = *patch.ReminderTime
	}
	if patch.ReminderDay != nil {
		goal.ReminderDay = *patch.ReminderDay
	}
	if patch.GracePeriod != nil {
		goal.GracePeriod = *patch.GracePeriod
	}

	err = validateGoal(goal)
	if err != nil {
		return nil, err
	}

	goal.UpdatedAt = s.clock.Now()
	err = s.repo.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

// Delete removes a goal with its submissions and their photos.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	subs, err := s.submissionRepo.ByGoal(goal.ID)
	if err != nil {
		return fmt.Errorf("failed to load submissions: %w", err)
	}

	var fileIDs []string
	for _, sub := range subs {
		if sub.PhotoFileID != nil {
			fileIDs = append(fileIDs, *sub.PhotoFileID)
		}
	}

	err = s.submissionRepo.DeleteByGoal(goal.ID)
	if err != nil {
		return fmt.Errorf("failed to delete submissions: %w", err)
	}

	err = s.repo.Delete(userID, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	if len(fileIDs) > 0 {
		s.fileService.DeleteMany(ctx, fileIDs)
	}

	slog.Info("goal deleted", "goal_id", goal.ID, "user_id", userID, "photos", len(fileIDs))
	return nil
}

// StartBreak pauses a goal. Starting a break twice is not an error.
func (s *GoalService) StartBreak(userID, goalID string) (*model.Goal, error) {
	now := s.clock.Now()

	subscription, err := s.subscriptionService.Subscription(userID)
	if err != nil {
		return nil, err
	}
	if subscription.MaxBreakDays() == 0 {
		return nil, ErrBreaksNotInPlan
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissionRepo.ByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	updated, changed := schedule.StartBreak(*goal, subs, now)
	if !changed {
		return goal, nil
	}

	updated.UpdatedAt = now
	err = s.repo.Update(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to start break: %w", err)
	}

	slog.Info("break started", "goal_id", goal.ID, "user_id", userID, "snapshot", *updated.BreakStreakSnapshot)
	return &updated, nil
}

// EndBreak resumes a goal. Ending a goal that is not on break is not an error.
func (s *GoalService) EndBreak(userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	return s.endBreak(goal)
}

func (s *GoalService) endBreak(goal *model.Goal) (*model.Goal, error) {
	now := s.clock.Now()

	updated, changed := schedule.EndBreak(*goal, now)
	if !changed {
		return goal, nil
	}

	updated.UpdatedAt = now
	err := s.repo.Update(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to end break: %w", err)
	}

	slog.Info("break ended", "goal_id", goal.ID, "user_id", goal.UserID)
	return &updated, nil
}

// ExpireBreaks ends every break that outlasted the owner's plan and tells
// the owner. Returns how many breaks were ended.
func (s *GoalService) ExpireBreaks(ctx context.Context) (int, error) {
	now := s.clock.Now()

	goals, err := s.repo.OnBreak()
	if err != nil {
		return 0, fmt.Errorf("failed to list goals on break: %w", err)
	}

	maxDays := make(map[string]int)
	expired := 0
	for _, goal := range goals {
		if err := ctx.Err(); err != nil {
			return expired, err
		}

		days, ok := maxDays[goal.UserID]
		if !ok {
			subscription, err := s.subscriptionService.Subscription(goal.UserID)
			if err != nil {
				slog.Warn("failed to load subscription for break check", "user_id", goal.UserID, "error", err)
				continue
			}
			days = subscription.MaxBreakDays()
			maxDays[goal.UserID] = days
		}

		if !schedule.BreakExpired(goal, now, days) {
			continue
		}

		updated, err := s.endBreak(goal)
		if err != nil {
			slog.Error("failed to expire break", "goal_id", goal.ID, "error", err)
			continue
		}
		expired++
		metrics.BreaksExpiredTotal.Inc()

		s.notifyBreakEnded(ctx, updated)
	}

	return expired, nil
}

func (s *GoalService) notifyBreakEnded(ctx context.Context, goal *model.Goal) {
	user, err := s.userRepo.ByID(goal.UserID)
	if err != nil {
		slog.Warn("failed to load goal owner", "user_id", goal.UserID, "error", err)
		return
	}

	carryover := 0
	if goal.StreakCarryover != nil {
		carryover = *goal.StreakCarryover
	}

	err = s.emailService.SendBreakEndedEmail(ctx, user.Email, goal.ID, goal.Title, carryover)
	if err != nil {
		slog.Warn("failed to send break ended email", "goal_id", goal.ID, "error", err)
	}
}

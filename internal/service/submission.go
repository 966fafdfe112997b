package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/metrics"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/schedule"
	"github.com/templui/proofstreak/internal/validation"
	"github.com/templui/proofstreak/internal/verify"
)

var (
	ErrSubmissionNotAllowed   = errors.New("submission not allowed now")
	ErrPeriodAlreadySatisfied = errors.New("goal already done for this period")
	ErrInvalidPhoto           = errors.New("invalid photo")
	ErrNotPending             = errors.New("submission is not pending")
)

const pendingFeedback = "Verification is temporarily unavailable. Your proof will be checked again soon."

// GateError carries the decision that refused a submission.
type GateError struct {
	Decision schedule.Decision
}

func (e *GateError) Error() string {
	if e.Decision.Message != "" {
		return e.Decision.Message
	}
	return e.Decision.Reason
}

func (e *GateError) Unwrap() error {
	if e.Decision.Reason == schedule.ReasonAlreadySatisfied {
		return ErrPeriodAlreadySatisfied
	}
	return ErrSubmissionNotAllowed
}

// PhotoUpload is an uploaded proof photo read into memory.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

type SubmitResult struct {
	Submission *model.ProofSubmission `json:"submission"`
	Decision   schedule.Decision      `json:"decision"`
	Streak     int                    `json:"streak"`
}

type SubmissionView struct {
	model.ProofSubmission
	PhotoURL string `json:"photo_url,omitempty"`
}

type SubmissionService struct {
	repo        repository.SubmissionRepository
	goalRepo    repository.GoalRepository
	fileService *FileService
	verifier    verify.Verifier
	clock       clock.Clock
}

func NewSubmissionService(
	repo repository.SubmissionRepository,
	goalRepo repository.GoalRepository,
	fileService *FileService,
	verifier verify.Verifier,
	clk clock.Clock,
) *SubmissionService {
	return &SubmissionService{
		repo:        repo,
		goalRepo:    goalRepo,
		fileService: fileService,
		verifier:    verifier,
		clock:       clk,
	}
}

// Submit gates, stores and verifies a proof photo for the goal's current period.
func (s *SubmissionService) Submit(ctx context.Context, userID, goalID string, photo PhotoUpload) (*SubmitResult, error) {
	now := s.clock.Now()

	goal, err := s.goalRepo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.ByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	decision := schedule.CanSubmitNow(goal, subs, now)
	if !decision.Allowed {
		metrics.GateRejectionsTotal.WithLabelValues(decision.Reason).Inc()
		return nil, &GateError{Decision: decision}
	}

	mimeType, err := validation.ValidateBytes(photo.Filename, photo.Data, validation.ImageConstraints)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPhoto, err)
	}

	sub := &model.ProofSubmission{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		UserID:    userID,
		Date:      decision.DueDate,
		PeriodKey: schedule.PeriodKey(goal, decision.DueDate, now.Location()),
		CreatedAt: now,
	}

	file, err := s.fileService.StoreProofPhoto(ctx, userID, sub.ID, photo.Filename, mimeType, photo.Data)
	if err != nil {
		return nil, err
	}
	sub.PhotoFileID = &file.ID

	result, err := s.verifier.Verify(ctx, verify.Photo{Data: photo.Data, MimeType: mimeType}, goal.Title, goal.Description)
	switch {
	case errors.Is(err, verify.ErrUnavailable):
		slog.Warn("verification unavailable, storing as pending", "goal_id", goal.ID, "error", err)
		sub.Status = model.SubmissionStatusPending
		sub.Feedback = pendingFeedback
	case err != nil:
		s.discardPhoto(ctx, file.ID)
		return nil, fmt.Errorf("failed to verify photo: %w", err)
	default:
		applyResult(sub, result, now)
	}

	err = s.repo.Create(sub)
	if errors.Is(err, repository.ErrDuplicateVerified) {
		// Lost a race with a concurrent submission for the same period
		s.discardPhoto(ctx, file.ID)
		metrics.GateRejectionsTotal.WithLabelValues(schedule.ReasonAlreadySatisfied).Inc()
		return nil, ErrPeriodAlreadySatisfied
	}
	if err != nil {
		s.discardPhoto(ctx, file.ID)
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(sub.Status).Inc()
	slog.Info("proof submitted", "goal_id", goal.ID, "user_id", userID, "date", sub.Date, "status", sub.Status)

	if sub.IsVerified() {
		s.recordCompletion(goal.ID, sub.Date, now)
	}

	// The goal may have changed while the photo was being verified
	if fresh, err := s.goalRepo.ByID(userID, goal.ID); err == nil {
		goal = fresh
	}

	return &SubmitResult{
		Submission: sub,
		Decision:   decision,
		Streak:     schedule.GoalStreak(goal, append(subs, *sub), now),
	}, nil
}

func applyResult(sub *model.ProofSubmission, result verify.Result, now time.Time) {
	sub.Feedback = result.Feedback
	if result.Verified {
		sub.Status = model.SubmissionStatusVerified
		sub.VerifiedAt = &now
		return
	}
	sub.Status = model.SubmissionStatusRejected
}

// recordCompletion mirrors a verified date onto the goal. The submissions
// stay authoritative, so a failure is only logged.
func (s *SubmissionService) recordCompletion(goalID, date string, now time.Time) {
	_, err := s.goalRepo.AddCompletedDate(goalID, date, now)
	if err != nil {
		slog.Warn("failed to record completed date", "goal_id", goalID, "date", date, "error", err)
	}
}

func (s *SubmissionService) discardPhoto(ctx context.Context, fileID string) {
	err := s.fileService.Delete(ctx, fileID)
	if err != nil {
		slog.Warn("failed to discard proof photo", "file_id", fileID, "error", err)
	}
}

// List returns a goal's submissions with links to their photos.
func (s *SubmissionService) List(ctx context.Context, userID, goalID string) ([]SubmissionView, error) {
	goal, err := s.goalRepo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.ByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	views := make([]SubmissionView, 0, len(subs))
	for _, sub := range subs {
		view := SubmissionView{ProofSubmission: sub}
		if sub.PhotoFileID != nil {
			file, err := s.fileService.ByID(*sub.PhotoFileID)
			if err == nil {
				view.PhotoURL = s.fileService.URL(ctx, file)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Reverify runs verification again for a submission left pending.
func (s *SubmissionService) Reverify(ctx context.Context, userID, submissionID string) (*model.ProofSubmission, error) {
	now := s.clock.Now()

	sub, err := s.repo.ByID(submissionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, repository.ErrSubmissionNotFound
	}
	if sub.Status != model.SubmissionStatusPending {
		return nil, ErrNotPending
	}
	if sub.PhotoFileID == nil {
		return nil, fmt.Errorf("%w: photo is gone", ErrInvalidPhoto)
	}

	goal, err := s.goalRepo.ByID(userID, sub.GoalID)
	if err != nil {
		return nil, err
	}

	photo, err := s.fileService.Read(ctx, *sub.PhotoFileID)
	if err != nil {
		return nil, err
	}

	result, err := s.verifier.Verify(ctx, photo, goal.Title, goal.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to verify photo: %w", err)
	}

	applyResult(sub, result, now)
	sub.PeriodKey = schedule.PeriodKey(goal, sub.Date, now.Location())
	err = s.repo.Update(sub)
	if errors.Is(err, repository.ErrDuplicateVerified) {
		return nil, ErrPeriodAlreadySatisfied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(sub.Status).Inc()
	slog.Info("proof reverified", "submission_id", sub.ID, "goal_id", goal.ID, "status", sub.Status)

	if sub.IsVerified() {
		s.recordCompletion(goal.ID, sub.Date, now)
	}

	return sub, nil
}

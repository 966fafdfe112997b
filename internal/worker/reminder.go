// Package worker runs the periodic maintenance jobs: submission window
// reminders and expiry of breaks that outlasted the owner's plan.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/metrics"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/schedule"
)

type Notifier interface {
	SendReminderEmail(ctx context.Context, email, goalID, goalTitle, closesAt string, streak int) error
}

type BreakExpirer interface {
	ExpireBreaks(ctx context.Context) (int, error)
}

type ReminderWorker struct {
	goalRepo       repository.GoalRepository
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	notifier       Notifier
	breaks         BreakExpirer
	clock          clock.Clock
	interval       time.Duration

	lastTick time.Time
}

func NewReminderWorker(
	goalRepo repository.GoalRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	breaks BreakExpirer,
	clk clock.Clock,
	interval time.Duration,
) *ReminderWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderWorker{
		goalRepo:       goalRepo,
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		breaks:         breaks,
		clock:          clk,
		interval:       interval,
	}
}

// Run ticks until ctx is cancelled.
func (w *ReminderWorker) Run(ctx context.Context) error {
	slog.Info("reminder worker starting", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("reminder worker stopped")
			return ctx.Err()
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick sends reminders for windows that opened since the previous tick and
// expires overdue breaks. Returns the number of reminders sent.
func (w *ReminderWorker) Tick(ctx context.Context) int {
	now := w.clock.Now()
	since := w.lastTick
	if since.IsZero() || !since.Before(now) {
		since = now.Add(-w.interval)
	}
	w.lastTick = now

	sent := w.remind(ctx, since, now)

	expired, err := w.breaks.ExpireBreaks(ctx)
	if err != nil {
		slog.Error("failed to expire breaks", "error", err)
	} else if expired > 0 {
		slog.Info("breaks expired", "count", expired)
	}

	return sent
}

func (w *ReminderWorker) remind(ctx context.Context, since, now time.Time) int {
	goals, err := w.goalRepo.AllGoals()
	if err != nil {
		slog.Error("failed to list goals for reminders", "error", err)
		return 0
	}

	emails := make(map[string]string)
	sent := 0
	for _, goal := range goals {
		if ctx.Err() != nil {
			return sent
		}

		window, due := schedule.DueWindow(goal, now)
		if !due || !window.Start.After(since) || window.Start.After(now) {
			continue
		}

		subs, err := w.submissionRepo.ByGoal(goal.ID)
		if err != nil {
			slog.Warn("failed to load submissions for reminder", "goal_id", goal.ID, "error", err)
			continue
		}
		if schedule.IsPeriodSatisfied(goal, subs, now) {
			continue
		}

		email, ok := emails[goal.UserID]
		if !ok {
			user, err := w.userRepo.ByID(goal.UserID)
			if err != nil {
				slog.Warn("failed to load goal owner", "user_id", goal.UserID, "error", err)
				continue
			}
			email = user.Email
			emails[goal.UserID] = email
		}

		if w.send(ctx, email, goal, window, schedule.GoalStreak(goal, subs, now)) {
			sent++
		}
	}

	return sent
}

func (w *ReminderWorker) send(ctx context.Context, email string, goal *model.Goal, window schedule.Window, streak int) bool {
	closesAt := window.End.Format("15:04")
	err := w.notifier.SendReminderEmail(ctx, email, goal.ID, goal.Title, closesAt, streak)
	if err != nil {
		slog.Warn("failed to send reminder", "goal_id", goal.ID, "user_id", goal.UserID, "error", err)
		return false
	}

	metrics.RemindersSentTotal.Inc()
	return true
}

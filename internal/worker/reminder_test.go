package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/db/dbtest"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
)

type reminder struct {
	email    string
	goalID   string
	closesAt string
	streak   int
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []reminder
}

func (n *recordingNotifier) SendReminderEmail(ctx context.Context, email, goalID, goalTitle, closesAt string, streak int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, reminder{email: email, goalID: goalID, closesAt: closesAt, streak: streak})
	return nil
}

type countingExpirer struct {
	calls int
}

func (e *countingExpirer) ExpireBreaks(ctx context.Context) (int, error) {
	e.calls++
	return 0, nil
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, time.UTC)
}

func TestReminderWorkerTick(t *testing.T) {
	database := dbtest.Open(t)
	users := repository.NewUserRepository(database)
	goals := repository.NewGoalRepository(database)
	subs := repository.NewSubmissionRepository(database)

	user := &model.User{ID: uuid.New().String(), Email: "ada@example.com", CreatedAt: at(1, 8, 0)}
	require.NoError(t, users.Create(user))

	newGoal := func(title, reminderTime, grace string) *model.Goal {
		g := &model.Goal{
			ID:           uuid.New().String(),
			UserID:       user.ID,
			Title:        title,
			Frequency:    model.FrequencyDaily,
			ReminderTime: reminderTime,
			GracePeriod:  grace,
			CreatedAt:    at(1, 8, 0),
			UpdatedAt:    at(1, 8, 0),
		}
		require.NoError(t, goals.Create(g))
		return g
	}
	run := newGoal("Run", "09:00", model.GracePeriod3h)
	done := newGoal("Read", "09:00", model.GracePeriodEndOfDay)
	later := newGoal("Journal", "21:00", model.GracePeriodEndOfDay)

	verifiedAt := at(14, 8, 0)
	require.NoError(t, subs.Create(&model.ProofSubmission{
		ID:         uuid.New().String(),
		GoalID:     done.ID,
		UserID:     user.ID,
		Date:       "2026-03-14",
		PeriodKey:  "2026-03-14",
		Status:     model.SubmissionStatusVerified,
		VerifiedAt: &verifiedAt,
		CreatedAt:  verifiedAt,
	}))

	clk := clock.NewFixed(at(14, 8, 59))
	notifier := &recordingNotifier{}
	expirer := &countingExpirer{}
	w := NewReminderWorker(goals, subs, users, notifier, expirer, clk, time.Minute)

	assert.Equal(t, 0, w.Tick(context.Background()))

	clk.Set(at(14, 9, 0))
	assert.Equal(t, 1, w.Tick(context.Background()))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, reminder{email: "ada@example.com", goalID: run.ID, closesAt: "12:00", streak: 0}, notifier.sent[0])

	// Same window on the next tick: no repeat.
	clk.Set(at(14, 9, 1))
	assert.Equal(t, 0, w.Tick(context.Background()))

	// A late tick still catches windows opened since the previous one.
	clk.Set(at(14, 21, 5))
	assert.Equal(t, 1, w.Tick(context.Background()))
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, later.ID, notifier.sent[1].goalID)
	assert.Equal(t, "23:59", notifier.sent[1].closesAt)

	assert.Equal(t, 4, expirer.calls)
}

func TestReminderWorkerRunStopsOnCancel(t *testing.T) {
	database := dbtest.Open(t)
	w := NewReminderWorker(
		repository.NewGoalRepository(database),
		repository.NewSubmissionRepository(database),
		repository.NewUserRepository(database),
		&recordingNotifier{},
		&countingExpirer{},
		clock.NewFixed(at(14, 9, 0)),
		10*time.Millisecond,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Run(ctx), context.DeadlineExceeded)
}

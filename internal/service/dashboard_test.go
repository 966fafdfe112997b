package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/schedule"
)

func TestDashboardProgress(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	user := e.user(t, "ada@example.com")
	_, err := e.subscriptions.ChangePlan(user.ID, model.SubscriptionPlanPro)
	require.NoError(t, err)

	p, err := e.dashboard.Progress(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.Progress{}, p)

	run := e.goal(t, user.ID, GoalInput{Title: "Run"})
	e.goal(t, user.ID, GoalInput{Title: "Read"})
	monday := 1
	e.goal(t, user.ID, GoalInput{Title: "Gym", Frequency: model.FrequencyWeekly, ReminderDay: &monday})
	paused := e.goal(t, user.ID, GoalInput{Title: "Stretch"})

	for day := 10; day <= 14; day++ {
		e.at(day, 20)
		_, err := e.submissions.Submit(ctx, user.ID, run.ID, pngPhoto)
		require.NoError(t, err)
	}
	_, err = e.goals.StartBreak(user.ID, paused.ID)
	require.NoError(t, err)

	p, err = e.dashboard.Progress(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.Progress{TotalDueToday: 2, DoneToday: 1, MaxStreak: 5}, p)

	// The next morning nothing is done yet but the run still stands.
	e.at(15, 10)
	p, err = e.dashboard.Progress(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.Progress{TotalDueToday: 2, DoneToday: 0, MaxStreak: 5}, p)
}

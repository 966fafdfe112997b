package schedule

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/proofstreak/internal/model"
)

func lookupFrom(m map[string][]model.ProofSubmission) SubmissionLookup {
	return func(goalID string) []model.ProofSubmission {
		return m[goalID]
	}
}

func TestComputeProgressEmpty(t *testing.T) {
	p := ComputeProgress(nil, lookupFrom(nil), at(14, 12, 0, 0))
	assert.Equal(t, Progress{}, p)
}

func TestComputeProgress(t *testing.T) {
	run := dailyGoal("09:00", "eod")
	run.ID = "run"
	read := dailyGoal("20:00", "eod")
	read.ID = "read"
	gym := weeklyGoal(int(time.Monday), "10:00", "eod")
	gym.ID = "gym"
	paused := dailyGoal("09:00", "eod")
	paused.ID = "paused"

	subs := map[string][]model.ProofSubmission{
		"run":  verified(marchDays(10, 14)...),
		"read": verified("2026-03-13"),
		"gym":  verified("2026-03-09"),
	}
	pausedSubs := verified(marchDays(1, 8)...)
	pausedGoal := startBreak(t, paused, pausedSubs, at(8, 22, 0, 0))
	subs["paused"] = pausedSubs

	goals := []*model.Goal{run, read, gym, pausedGoal, nil}
	now := at(14, 12, 0, 0)

	p := ComputeProgress(goals, lookupFrom(subs), now)
	assert.Equal(t, 2, p.TotalDueToday) // run and read; gym is Monday-only, paused is on break
	assert.Equal(t, 1, p.DoneToday)
	assert.Equal(t, 8, p.MaxStreak)
	assert.LessOrEqual(t, p.DoneToday, p.TotalDueToday)

	reversed := slices.Clone(goals)
	slices.Reverse(reversed)
	assert.Equal(t, p, ComputeProgress(reversed, lookupFrom(subs), now))
}

func TestEvaluateOpenWindow(t *testing.T) {
	goal := dailyGoal("09:00", model.GracePeriod3h)
	st := Evaluate(goal, verified("2026-03-13"), at(14, 10, 0, 0))

	assert.True(t, st.Due)
	assert.True(t, st.WindowOpen)
	require.NotNil(t, st.WindowStart)
	require.NotNil(t, st.WindowEnd)
	assert.True(t, st.WindowStart.Equal(at(14, 9, 0, 0)))
	assert.True(t, st.WindowEnd.Equal(at(14, 12, 0, 0)))
	assert.Empty(t, st.Message)
	assert.Equal(t, 1, st.Streak)
	assert.False(t, st.Satisfied)
	assert.True(t, st.CanSubmit)
	assert.Equal(t, ReasonOK, st.Reason)
}

func TestEvaluateNotDue(t *testing.T) {
	goal := weeklyGoal(int(time.Saturday), "10:00", "eod")
	st := Evaluate(goal, nil, at(10, 10, 0, 0))

	assert.False(t, st.Due)
	assert.False(t, st.WindowOpen)
	assert.Nil(t, st.WindowStart)
	assert.Equal(t, "Not due today (next: Saturday at 10:00)", st.Message)
	assert.False(t, st.CanSubmit)
	assert.Equal(t, ReasonNotDue, st.Reason)
}

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartBreakIsIdempotent(t *testing.T) {
	subs := verified(marchDays(1, 3)...)
	goal := startBreak(t, dailyGoal("09:00", "eod"), subs, at(3, 20, 0, 0))

	again, changed := StartBreak(*goal, verified(marchDays(1, 10)...), at(10, 20, 0, 0))
	assert.False(t, changed)
	require.NotNil(t, again.BreakStreakSnapshot)
	assert.Equal(t, 3, *again.BreakStreakSnapshot)
	assert.True(t, again.BreakStartedAt.Equal(at(3, 20, 0, 0)))
}

func TestStartBreakClearsPreviousResume(t *testing.T) {
	subs := verified(marchDays(1, 3)...)
	goal := startBreak(t, dailyGoal("09:00", "eod"), subs, at(3, 20, 0, 0))
	goal = endBreak(t, goal, at(4, 9, 0, 0))
	require.NotNil(t, goal.BreakEndedAt)
	require.NotNil(t, goal.StreakCarryover)

	goal = startBreak(t, goal, subs, at(4, 10, 0, 0))
	assert.True(t, goal.IsOnBreak)
	assert.Nil(t, goal.BreakEndedAt)
	assert.Nil(t, goal.StreakCarryover)
	assert.Equal(t, 3, *goal.BreakStreakSnapshot)
}

func TestEndBreakRequiresBreak(t *testing.T) {
	goal := dailyGoal("09:00", "eod")
	updated, changed := EndBreak(*goal, at(10, 9, 0, 0))
	assert.False(t, changed)
	assert.Nil(t, updated.BreakEndedAt)
	assert.Nil(t, updated.StreakCarryover)
}

func TestEndBreakCopiesSnapshot(t *testing.T) {
	goal := startBreak(t, dailyGoal("09:00", "eod"), verified(marchDays(1, 2)...), at(2, 20, 0, 0))
	goal = endBreak(t, goal, at(5, 9, 0, 0))

	assert.False(t, goal.IsOnBreak)
	require.NotNil(t, goal.StreakCarryover)
	assert.Equal(t, 2, *goal.StreakCarryover)

	*goal.BreakStreakSnapshot = 99
	assert.Equal(t, 2, *goal.StreakCarryover)
}

func TestStartBreakDoesNotMutateInput(t *testing.T) {
	goal := dailyGoal("09:00", "eod")
	_, changed := StartBreak(*goal, nil, at(5, 9, 0, 0))
	assert.True(t, changed)
	assert.False(t, goal.IsOnBreak)
	assert.Nil(t, goal.BreakStartedAt)
}

func TestBreakExpired(t *testing.T) {
	goal := startBreak(t, dailyGoal("09:00", "eod"), nil, at(1, 20, 0, 0))

	assert.False(t, BreakExpired(goal, at(7, 23, 0, 0), 7))
	assert.True(t, BreakExpired(goal, at(8, 0, 0, 0), 7))
	assert.False(t, BreakExpired(goal, at(31, 0, 0, 0), -1))

	resumed := endBreak(t, goal, at(2, 9, 0, 0))
	assert.False(t, BreakExpired(resumed, at(31, 0, 0, 0), 7))
}

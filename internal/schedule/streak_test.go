package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/proofstreak/internal/model"
)

func TestStreakZeroWithoutVerifiedSubmissions(t *testing.T) {
	now := at(14, 10, 0, 0)

	assert.Equal(t, 0, GoalStreak(dailyGoal("09:00", "eod"), nil, now))
	assert.Equal(t, 0, GoalStreak(weeklyGoal(6, "10:00", "eod"), nil, now))
	assert.Equal(t, 0, GoalStreak(dailyGoal("09:00", "eod"), withStatus(model.SubmissionStatusPending, marchDays(10, 14)...), now))
	assert.Equal(t, 0, GoalStreak(dailyGoal("09:00", "eod"), withStatus(model.SubmissionStatusRejected, marchDays(10, 14)...), now))
}

func TestDailyStreakCountsRunEndingToday(t *testing.T) {
	goal := dailyGoal("09:00", "eod")
	now := at(14, 10, 0, 0)

	// 01..08 verified, gap on 09, then 10..14.
	subs := verified(append(marchDays(1, 8), marchDays(10, 14)...)...)
	assert.Equal(t, 5, GoalStreak(goal, subs, now))
}

func TestDailyStreakTodayNotYetDone(t *testing.T) {
	goal := dailyGoal("09:00", "eod")
	subs := verified(marchDays(10, 13)...)

	assert.Equal(t, 4, GoalStreak(goal, subs, at(14, 8, 0, 0)))
	// Yesterday missing as well: the run is over.
	assert.Equal(t, 0, GoalStreak(goal, subs, at(15, 8, 0, 0)))
}

func TestStreakIsNotHistoricalMaximum(t *testing.T) {
	goal := dailyGoal("09:00", "eod")
	subs := verified(append(marchDays(1, 10), "2026-03-13", "2026-03-14")...)

	assert.Equal(t, 2, GoalStreak(goal, subs, at(14, 20, 0, 0)))
}

func TestStreakDeduplicatesAndIgnoresNoise(t *testing.T) {
	goal := dailyGoal("09:00", "eod")
	subs := verified("2026-03-12", "2026-03-13", "2026-03-13", "2026-03-14", "2026-03-14", "bogus")
	subs = append(subs, withStatus(model.SubmissionStatusPending, "2026-03-11")...)

	assert.Equal(t, 3, GoalStreak(goal, subs, at(14, 20, 0, 0)))
}

func TestWeeklyStreakFourSaturdays(t *testing.T) {
	goal := weeklyGoal(int(time.Saturday), "10:00", model.GracePeriodEndOfDay)
	subs := verified("2026-02-21", "2026-02-28", "2026-03-07", "2026-03-14")

	assert.Equal(t, 4, GoalStreak(goal, subs, at(14, 12, 0, 0)))
}

func TestWeeklyStreakResetsAfterSkippedWeek(t *testing.T) {
	goal := weeklyGoal(int(time.Saturday), "10:00", model.GracePeriodEndOfDay)
	subs := verified("2026-02-14", "2026-02-21", "2026-02-28", "2026-03-07")

	// During the skipped week the run still stands.
	assert.Equal(t, 4, GoalStreak(goal, subs, at(14, 20, 0, 0)))
	// The following week it is gone, older Saturdays notwithstanding.
	assert.Equal(t, 0, GoalStreak(goal, subs, at(21, 9, 0, 0)))
}

func TestWeeklyStreakCountsAnyDayInWeek(t *testing.T) {
	goal := weeklyGoal(int(time.Saturday), "10:00", model.GracePeriodEndOfDay)
	subs := verified("2026-03-02", "2026-03-04", "2026-03-09")

	assert.Equal(t, 2, GoalStreak(goal, subs, at(14, 12, 0, 0)))
}

func startBreak(t *testing.T, goal *model.Goal, subs []model.ProofSubmission, now time.Time) *model.Goal {
	t.Helper()
	updated, changed := StartBreak(*goal, subs, now)
	require.True(t, changed)
	return &updated
}

func endBreak(t *testing.T, goal *model.Goal, now time.Time) *model.Goal {
	t.Helper()
	updated, changed := EndBreak(*goal, now)
	require.True(t, changed)
	return &updated
}

func TestStreakFrozenWhileOnBreak(t *testing.T) {
	subs := verified(marchDays(1, 5)...)
	goal := startBreak(t, dailyGoal("09:00", "eod"), subs, at(5, 20, 0, 0))
	require.NotNil(t, goal.BreakStreakSnapshot)
	assert.Equal(t, 5, *goal.BreakStreakSnapshot)

	assert.Equal(t, 5, GoalStreak(goal, subs, at(14, 10, 0, 0)))
	assert.False(t, IsDue(goal, at(14, 10, 0, 0)))
}

func TestCarryoverAfterResume(t *testing.T) {
	before := verified(marchDays(1, 5)...)
	goal := startBreak(t, dailyGoal("09:00", "eod"), before, at(5, 20, 0, 0))
	goal = endBreak(t, goal, at(10, 9, 0, 0))
	require.NotNil(t, goal.StreakCarryover)
	assert.Equal(t, 5, *goal.StreakCarryover)

	subs := append(before, verified(marchDays(10, 14)...)...)
	assert.Equal(t, 10, GoalStreak(goal, subs, at(14, 10, 0, 0)))
}

func TestCarryoverSurvivesResumeDayOnly(t *testing.T) {
	subs := verified(marchDays(1, 5)...)
	goal := startBreak(t, dailyGoal("09:00", "eod"), subs, at(5, 20, 0, 0))
	goal = endBreak(t, goal, at(10, 9, 0, 0))

	assert.Equal(t, 5, GoalStreak(goal, subs, at(11, 10, 0, 0)))
	// Missing the first full day after the break forfeits the carryover.
	assert.Equal(t, 0, GoalStreak(goal, subs, at(12, 10, 0, 0)))
}

func TestGapAfterResumeBreaksStreak(t *testing.T) {
	before := verified(marchDays(1, 5)...)
	goal := startBreak(t, dailyGoal("09:00", "eod"), before, at(5, 20, 0, 0))
	goal = endBreak(t, goal, at(10, 9, 0, 0))

	subs := append(before, verified("2026-03-10", "2026-03-11", "2026-03-13", "2026-03-14")...)
	assert.Equal(t, 2, GoalStreak(goal, subs, at(14, 10, 0, 0)))
}

func TestBreakSpanWithoutCarryoverWalksHistory(t *testing.T) {
	started := at(5, 20, 0, 0)
	ended := at(10, 9, 0, 0)
	goal := dailyGoal("09:00", "eod")
	goal.BreakStartedAt = &started
	goal.BreakEndedAt = &ended

	subs := verified(append(marchDays(1, 5), marchDays(10, 14)...)...)
	assert.Equal(t, 10, GoalStreak(goal, subs, at(14, 10, 0, 0)))
}

func TestSameDayBreakDoesNotDoubleCount(t *testing.T) {
	subs := verified(marchDays(1, 5)...)
	goal := startBreak(t, dailyGoal("09:00", "eod"), subs, at(5, 20, 0, 0))
	goal = endBreak(t, goal, at(5, 21, 0, 0))

	assert.Equal(t, 5, GoalStreak(goal, subs, at(5, 22, 0, 0)))
	assert.Equal(t, 5, GoalStreak(goal, subs, at(6, 10, 0, 0)))
	assert.Equal(t, 0, GoalStreak(goal, subs, at(7, 10, 0, 0)))
}

func TestWeeklyStreakFrozenWhileOnBreak(t *testing.T) {
	subs := verified("2026-02-21", "2026-02-28")
	goal := startBreak(t, weeklyGoal(int(time.Saturday), "10:00", "eod"), subs, at(1, 10, 0, 0))

	assert.Equal(t, 2, *goal.BreakStreakSnapshot)
	assert.Equal(t, 2, GoalStreak(goal, subs, at(21, 10, 0, 0)))
}

package schedule

import (
	"time"

	"github.com/templui/proofstreak/internal/model"
)

// StartBreak moves an active goal onto break, freezing the current streak
// into BreakStreakSnapshot. It returns the updated goal and false when the
// goal was already on break.
func StartBreak(goal model.Goal, subs []model.ProofSubmission, now time.Time) (model.Goal, bool) {
	if goal.IsOnBreak {
		return goal, false
	}

	snapshot := GoalStreak(&goal, subs, now)
	started := now

	goal.IsOnBreak = true
	goal.BreakStartedAt = &started
	goal.BreakEndedAt = nil
	goal.BreakStreakSnapshot = &snapshot
	goal.StreakCarryover = nil
	return goal, true
}

// EndBreak resumes a goal. The frozen snapshot becomes the carryover that
// GoalStreak adds once its walk reaches the break. Returns false when the
// goal was not on break.
func EndBreak(goal model.Goal, now time.Time) (model.Goal, bool) {
	if !goal.IsOnBreak {
		return goal, false
	}

	ended := now
	goal.IsOnBreak = false
	goal.BreakEndedAt = &ended
	goal.StreakCarryover = nil
	if goal.BreakStreakSnapshot != nil {
		carry := *goal.BreakStreakSnapshot
		goal.StreakCarryover = &carry
	}
	return goal, true
}

// BreakExpired reports whether a break has lasted maxDays calendar days.
// A negative maxDays means no limit.
func BreakExpired(goal *model.Goal, now time.Time, maxDays int) bool {
	if !goal.IsOnBreak || goal.BreakStartedAt == nil || maxDays < 0 {
		return false
	}
	limit := StartOfDay(goal.BreakStartedAt.In(now.Location())).AddDate(0, 0, maxDays)
	return !now.Before(limit)
}

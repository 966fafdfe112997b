package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/templui/proofstreak/internal/model"
)

func TestMarkDoneScenario(t *testing.T) {
	goal := dailyGoal("09:00", model.GracePeriod3h)
	var subs []model.ProofSubmission

	now := at(14, 9, 0, 0)
	assert.True(t, IsWithinSubmissionWindow(goal, now))
	d := CanSubmitNow(goal, subs, now)
	assert.True(t, d.Allowed)
	assert.Equal(t, ReasonOK, d.Reason)
	assert.Equal(t, "2026-03-14", d.DueDate)

	subs = append(subs, verified(d.DueDate)...)

	later := at(14, 11, 0, 0)
	assert.True(t, IsPeriodSatisfied(goal, subs, later))
	d = CanSubmitNow(goal, subs, later)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAlreadySatisfied, d.Reason)
	assert.Equal(t, "Already done today", d.Message)
}

func TestWindowClosedDecision(t *testing.T) {
	goal := dailyGoal("09:00", model.GracePeriod3h)
	now := at(14, 12, 30, 0)

	assert.False(t, IsWithinSubmissionWindow(goal, now))
	d := CanSubmitNow(goal, nil, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonWindowClosed, d.Reason)
	assert.Equal(t, "Closed at 12:00 (until next window)", d.Message)
	assert.Equal(t, "2026-03-14", d.DueDate)

	d = CanSubmitNow(goal, nil, at(14, 7, 0, 0))
	assert.Equal(t, ReasonWindowClosed, d.Reason)
	assert.Equal(t, "Opens at 09:00", d.Message)
}

func TestNotDueAndOnBreakDecisions(t *testing.T) {
	weekly := weeklyGoal(int(time.Saturday), "10:00", model.GracePeriodEndOfDay)
	d := CanSubmitNow(weekly, nil, at(10, 12, 0, 0))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotDue, d.Reason)
	assert.Empty(t, d.DueDate)

	daily := dailyGoal("09:00", model.GracePeriodEndOfDay)
	daily.IsOnBreak = true
	d = CanSubmitNow(daily, nil, at(14, 12, 0, 0))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonOnBreak, d.Reason)
}

func TestDailySatisfiedOnlyByVerifiedToday(t *testing.T) {
	goal := dailyGoal("09:00", model.GracePeriodEndOfDay)
	now := at(14, 15, 0, 0)

	assert.False(t, IsPeriodSatisfied(goal, nil, now))
	assert.False(t, IsPeriodSatisfied(goal, verified("2026-03-13"), now))
	assert.False(t, IsPeriodSatisfied(goal, withStatus(model.SubmissionStatusPending, "2026-03-14"), now))
	assert.False(t, IsPeriodSatisfied(goal, withStatus(model.SubmissionStatusRejected, "2026-03-14"), now))
	assert.False(t, IsPeriodSatisfied(goal, verified("not-a-date"), now))
	assert.True(t, IsPeriodSatisfied(goal, verified("2026-03-14"), now))
	assert.True(t, IsPeriodSatisfied(goal, verified("2026-03-14", "2026-03-14"), now))
}

func TestWeeklySatisfiedAnywhereInWeek(t *testing.T) {
	goal := weeklyGoal(int(time.Saturday), "10:00", model.GracePeriodEndOfDay)
	now := at(14, 12, 0, 0) // week of Sun 08 .. Sat 14

	assert.True(t, IsPeriodSatisfied(goal, verified("2026-03-08"), now))
	assert.True(t, IsPeriodSatisfied(goal, verified("2026-03-11"), now))
	assert.False(t, IsPeriodSatisfied(goal, verified("2026-03-07"), now))
	assert.False(t, IsPeriodSatisfied(goal, verified("2026-03-15"), now))

	d := CanSubmitNow(goal, verified("2026-03-11"), now)
	assert.False(t, d.Allowed)
	assert.Equal(t, "Already done this week", d.Message)
}

func TestPeriodKey(t *testing.T) {
	daily := dailyGoal("09:00", model.GracePeriodEndOfDay)
	weekly := weeklyGoal(6, "10:00", model.GracePeriodEndOfDay)

	assert.Equal(t, "2026-03-14", PeriodKey(daily, "2026-03-14", time.UTC))
	assert.Equal(t, "2026-03-08", PeriodKey(weekly, "2026-03-14", time.UTC))
	assert.Equal(t, "garbage", PeriodKey(weekly, "garbage", time.UTC))
}

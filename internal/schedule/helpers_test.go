package schedule

import (
	"time"

	"github.com/templui/proofstreak/internal/model"
)

// at returns an instant in March 2026, UTC. 2026-03-14 is a Saturday.
func at(day, hour, minute, sec int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, sec, 0, time.UTC)
}

func dailyGoal(reminder, grace string) *model.Goal {
	return &model.Goal{
		ID:           "daily",
		Frequency:    model.FrequencyDaily,
		ReminderTime: reminder,
		GracePeriod:  grace,
	}
}

func weeklyGoal(day int, reminder, grace string) *model.Goal {
	return &model.Goal{
		ID:           "weekly",
		Frequency:    model.FrequencyWeekly,
		ReminderTime: reminder,
		ReminderDay:  day,
		GracePeriod:  grace,
	}
}

func withStatus(status string, dates ...string) []model.ProofSubmission {
	subs := make([]model.ProofSubmission, 0, len(dates))
	for _, d := range dates {
		subs = append(subs, model.ProofSubmission{ID: "sub-" + d, Date: d, Status: status})
	}
	return subs
}

func verified(dates ...string) []model.ProofSubmission {
	return withStatus(model.SubmissionStatusVerified, dates...)
}

// marchDays returns 2026-03-from .. 2026-03-to inclusive.
func marchDays(from, to int) []string {
	var out []string
	for d := from; d <= to; d++ {
		out = append(out, FormatDate(at(d, 0, 0, 0)))
	}
	return out
}

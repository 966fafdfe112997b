package schedule

import (
	"time"

	"github.com/templui/proofstreak/internal/model"
)

// Progress is the dashboard summary across all of a user's goals.
type Progress struct {
	TotalDueToday int `json:"total_due_today" yaml:"total_due_today"`
	DoneToday     int `json:"done_today" yaml:"done_today"`
	MaxStreak     int `json:"max_streak" yaml:"max_streak"`
}

// SubmissionLookup returns the submissions recorded for a goal.
type SubmissionLookup func(goalID string) []model.ProofSubmission

// ComputeProgress folds every goal into the dashboard numbers. Goals on break
// are never due; MaxStreak still considers them.
func ComputeProgress(goals []*model.Goal, lookup SubmissionLookup, now time.Time) Progress {
	var p Progress
	for _, goal := range goals {
		if goal == nil {
			continue
		}
		subs := lookup(goal.ID)

		if IsDue(goal, now) {
			p.TotalDueToday++
			if IsPeriodSatisfied(goal, subs, now) {
				p.DoneToday++
			}
		}

		streak := GoalStreak(goal, subs, now)
		if streak > p.MaxStreak {
			p.MaxStreak = streak
		}
	}
	return p
}

// Status is every predicate for one goal evaluated at the same instant.
type Status struct {
	Due         bool       `json:"due" yaml:"due"`
	WindowOpen  bool       `json:"window_open" yaml:"window_open"`
	WindowStart *time.Time `json:"window_start,omitempty" yaml:"window_start,omitempty"`
	WindowEnd   *time.Time `json:"window_end,omitempty" yaml:"window_end,omitempty"`
	Message     string     `json:"message,omitempty" yaml:"message,omitempty"`
	Streak      int        `json:"streak" yaml:"streak"`
	Satisfied   bool       `json:"satisfied" yaml:"satisfied"`
	CanSubmit   bool       `json:"can_submit" yaml:"can_submit"`
	Reason      string     `json:"reason" yaml:"reason"`
}

func Evaluate(goal *model.Goal, subs []model.ProofSubmission, now time.Time) Status {
	decision := CanSubmitNow(goal, subs, now)
	st := Status{
		Message:   SubmissionWindowMessage(goal, now),
		Streak:    GoalStreak(goal, subs, now),
		Satisfied: IsPeriodSatisfied(goal, subs, now),
		CanSubmit: decision.Allowed,
		Reason:    decision.Reason,
	}

	w, due := DueWindow(goal, now)
	if due {
		st.Due = true
		st.WindowOpen = w.Contains(now)
		st.WindowStart = &w.Start
		st.WindowEnd = &w.End
	}
	return st
}

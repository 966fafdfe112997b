package schedule

import (
	"time"

	"github.com/templui/proofstreak/internal/model"
)

const (
	ReasonOK               = "ok"
	ReasonOnBreak          = "on_break"
	ReasonNotDue           = "not_due"
	ReasonWindowClosed     = "window_closed"
	ReasonAlreadySatisfied = "already_satisfied"
)

// Decision is the gate's answer to "can the user submit proof now".
type Decision struct {
	Allowed bool
	Reason  string
	Message string
	// DueDate is the yyyy-mm-dd date a submission made now counts toward.
	// Empty when the goal is not due.
	DueDate string
}

// IsPeriodSatisfied reports whether the current period already has a
// verified submission: today for daily goals, the Sunday-start week
// containing now for weekly goals. Duplicates are harmless.
func IsPeriodSatisfied(goal *model.Goal, subs []model.ProofSubmission, now time.Time) bool {
	loc := now.Location()
	from := StartOfDay(now)
	to := from.AddDate(0, 0, 1)
	if goal.IsWeekly() {
		from = StartOfWeek(now)
		to = from.AddDate(0, 0, 7)
	}

	for i := range subs {
		if !subs[i].IsVerified() {
			continue
		}
		d, ok := ParseDate(subs[i].Date, loc)
		if !ok {
			continue
		}
		if !d.Before(from) && d.Before(to) {
			return true
		}
	}
	return false
}

// CanSubmitNow allows a submission only while the window is open and the
// period is not yet satisfied. It never fails: every closed state is a
// Decision with Allowed=false.
func CanSubmitNow(goal *model.Goal, subs []model.ProofSubmission, now time.Time) Decision {
	if goal.IsOnBreak {
		return Decision{Reason: ReasonOnBreak, Message: SubmissionWindowMessage(goal, now)}
	}

	w, due := DueWindow(goal, now)
	if !due {
		return Decision{Reason: ReasonNotDue, Message: SubmissionWindowMessage(goal, now)}
	}

	dueDate := FormatDate(w.DueDate)

	if !w.Contains(now) {
		return Decision{Reason: ReasonWindowClosed, Message: SubmissionWindowMessage(goal, now), DueDate: dueDate}
	}

	if IsPeriodSatisfied(goal, subs, now) {
		msg := "Already done today"
		if goal.IsWeekly() {
			msg = "Already done this week"
		}
		return Decision{Reason: ReasonAlreadySatisfied, Message: msg, DueDate: dueDate}
	}

	return Decision{Allowed: true, Reason: ReasonOK, DueDate: dueDate}
}

// PeriodKey returns the storage key for the period containing date: the date
// itself for daily goals and the week start for weekly goals. Unparseable
// dates are returned unchanged.
func PeriodKey(goal *model.Goal, date string, loc *time.Location) string {
	d, ok := ParseDate(date, loc)
	if !ok {
		return date
	}
	return FormatDate(periodsFor(goal).start(d))
}

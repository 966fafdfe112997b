package schedule

import (
	"fmt"
	"time"

	"github.com/templui/proofstreak/internal/model"
)

const clockLayout = "15:04"

// Window is the submission window for one due date.
type Window struct {
	DueDate time.Time // midnight of the due day
	Start   time.Time
	End     time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DueWindow returns today's submission window when the goal is due today.
// Daily goals are due every day, weekly goals only on their reminder day, and
// goals on break are never due.
func DueWindow(goal *model.Goal, now time.Time) (Window, bool) {
	if goal.IsOnBreak {
		return Window{}, false
	}
	if goal.IsWeekly() && now.Weekday() != reminderDay(goal) {
		return Window{}, false
	}
	return windowOn(goal, StartOfDay(now)), true
}

// windowOn builds the window for day. The end is clipped to the last
// millisecond of day so a window never spills into the next calendar day.
func windowOn(goal *model.Goal, day time.Time) Window {
	h, m := reminderClock(goal)
	y, mo, d := day.Date()
	start := time.Date(y, mo, d, h, m, 0, 0, day.Location())

	end := EndOfDay(day)
	grace, ok := graceDuration(goal.GracePeriod)
	if ok {
		candidate := start.Add(grace)
		if candidate.Before(end) {
			end = candidate
		}
	}

	return Window{DueDate: day, Start: start, End: end}
}

func IsDue(goal *model.Goal, now time.Time) bool {
	_, due := DueWindow(goal, now)
	return due
}

func IsWithinSubmissionWindow(goal *model.Goal, now time.Time) bool {
	w, due := DueWindow(goal, now)
	return due && w.Contains(now)
}

// SubmissionWindowMessage explains why the window is closed. It returns ""
// while the window is open.
func SubmissionWindowMessage(goal *model.Goal, now time.Time) string {
	if goal.IsOnBreak {
		return "On break"
	}

	w, due := DueWindow(goal, now)
	if !due {
		next := nextDueWindow(goal, now)
		return fmt.Sprintf("Not due today (next: %s at %s)", next.DueDate.Weekday(), next.Start.Format(clockLayout))
	}

	switch {
	case now.Before(w.Start):
		return "Opens at " + w.Start.Format(clockLayout)
	case now.After(w.End):
		return "Closed at " + w.End.Format(clockLayout) + " (until next window)"
	}
	return ""
}

// nextDueWindow returns the next window strictly after today for a goal that
// is not due today. Only weekly goals reach this.
func nextDueWindow(goal *model.Goal, now time.Time) Window {
	days := (int(reminderDay(goal)) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return windowOn(goal, StartOfDay(now).AddDate(0, 0, days))
}

package schedule

import (
	"strings"
	"time"

	"github.com/templui/proofstreak/internal/model"
)

// DateLayout is the yyyy-mm-dd form used for submission dates and period keys.
const DateLayout = "2006-01-02"

const (
	defaultDailyHour  = 9
	defaultWeeklyHour = 10
)

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads a date-only string as midnight in loc. Reports false for
// anything that is not a valid yyyy-mm-dd date.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfWeek returns midnight of the Sunday starting t's week.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// ParseReminderTime parses a strict HH:MM string.
func ParseReminderTime(s string) (hour, minute int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	hour, ok = twoDigits(s[0:2])
	if !ok || hour > 23 {
		return 0, 0, false
	}
	minute, ok = twoDigits(s[3:5])
	if !ok || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// reminderClock returns the goal's reminder hour and minute, falling back to
// 09:00 for daily goals and 10:00 for weekly goals when the stored value is malformed.
func reminderClock(goal *model.Goal) (int, int) {
	h, m, ok := ParseReminderTime(goal.ReminderTime)
	if ok {
		return h, m
	}
	if goal.IsWeekly() {
		return defaultWeeklyHour, 0
	}
	return defaultDailyHour, 0
}

func reminderDay(goal *model.Goal) time.Weekday {
	if goal.ReminderDay < 0 || goal.ReminderDay > 6 {
		return time.Sunday
	}
	return time.Weekday(goal.ReminderDay)
}

// graceDuration reports false for end-of-day. Unknown values are treated as end-of-day.
func graceDuration(grace string) (time.Duration, bool) {
	switch grace {
	case model.GracePeriod1h:
		return time.Hour, true
	case model.GracePeriod3h:
		return 3 * time.Hour, true
	case model.GracePeriod6h:
		return 6 * time.Hour, true
	case model.GracePeriod12h:
		return 12 * time.Hour, true
	}
	return 0, false
}

package schedule

import (
	"time"

	"github.com/templui/proofstreak/internal/model"
)

// periods steps through calendar days or Sunday-start weeks.
type periods struct {
	start func(time.Time) time.Time
	step  int // days
}

func (p periods) prev(t time.Time) time.Time {
	return t.AddDate(0, 0, -p.step)
}

func periodsFor(goal *model.Goal) periods {
	if goal.IsWeekly() {
		return periods{start: StartOfWeek, step: 7}
	}
	return periods{start: StartOfDay, step: 1}
}

// breakSpan is the run of periods in which a missed period does not break the
// streak. base is added once the walk moves below from.
type breakSpan struct {
	active  bool
	from    time.Time
	to      time.Time
	base    int
	hasBase bool
}

func (s breakSpan) contains(t time.Time) bool {
	return s.active && !t.Before(s.from) && !t.After(s.to)
}

// spanFor covers the periods strictly after the break-start period through
// the break-end period, or through the current period while still on break.
func spanFor(goal *model.Goal, p periods, now time.Time) breakSpan {
	if goal.BreakStartedAt == nil {
		return breakSpan{}
	}

	loc := now.Location()
	span := breakSpan{
		active: true,
		from:   p.start(goal.BreakStartedAt.In(loc)).AddDate(0, 0, p.step),
	}

	switch {
	case goal.IsOnBreak:
		span.to = p.start(now)
		if goal.BreakStreakSnapshot != nil {
			span.base, span.hasBase = *goal.BreakStreakSnapshot, true
		}
	case goal.BreakEndedAt != nil:
		span.to = p.start(goal.BreakEndedAt.In(loc))
		if goal.StreakCarryover != nil {
			span.base, span.hasBase = *goal.StreakCarryover, true
		}
	default:
		return breakSpan{}
	}

	if span.base < 0 {
		span.base = 0
	}
	return span
}

// GoalStreak returns the current run of consecutive periods with a verified
// submission. The walk is anchored at the current period; an unfinished
// current period is skipped rather than counted as a gap. Pending and
// rejected submissions are ignored and duplicates count once.
func GoalStreak(goal *model.Goal, subs []model.ProofSubmission, now time.Time) int {
	p := periodsFor(goal)
	loc := now.Location()

	hits := make(map[string]struct{}, len(subs))
	for i := range subs {
		if !subs[i].IsVerified() {
			continue
		}
		d, ok := ParseDate(subs[i].Date, loc)
		if !ok {
			continue
		}
		hits[FormatDate(p.start(d))] = struct{}{}
	}

	span := spanFor(goal, p, now)
	if len(hits) == 0 && !span.hasBase {
		return 0
	}

	hit := func(t time.Time) bool {
		_, ok := hits[FormatDate(t)]
		return ok
	}

	cursor := p.start(now)
	if !hit(cursor) {
		cursor = p.prev(cursor)
	}

	streak := 0
	for {
		if span.active && cursor.Before(span.from) {
			if span.hasBase {
				return streak + span.base
			}
			span.active = false
		}

		if hit(cursor) {
			streak++
			cursor = p.prev(cursor)
			continue
		}

		if span.contains(cursor) {
			cursor = p.prev(cursor)
			continue
		}

		return streak
	}
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

const (
	GracePeriod1h       = "1h"
	GracePeriod3h       = "3h"
	GracePeriod6h       = "6h"
	GracePeriod12h      = "12h"
	GracePeriodEndOfDay = "eod"
)

const (
	DefaultReminderTime = "09:00"
	DefaultReminderDay  = 0 // Sunday
	DefaultGracePeriod  = GracePeriodEndOfDay
)

type Goal struct {
	ID           string `db:"id" json:"id" yaml:"id"`
	UserID       string `db:"user_id" json:"user_id" yaml:"user_id"`
	Title        string `db:"title" json:"title" yaml:"title"`
	Description  string `db:"description" json:"description" yaml:"description"`
	Frequency    string `db:"frequency" json:"frequency" yaml:"frequency"`
	ReminderTime string `db:"reminder_time" json:"reminder_time" yaml:"reminder_time"` // HH:MM
	ReminderDay  int    `db:"reminder_day" json:"reminder_day" yaml:"reminder_day"`    // 0-6, Sunday=0, weekly only
	GracePeriod  string `db:"grace_period" json:"grace_period" yaml:"grace_period"`

	IsOnBreak           bool       `db:"is_on_break" json:"is_on_break" yaml:"is_on_break"`
	BreakStartedAt      *time.Time `db:"break_started_at" json:"break_started_at,omitempty" yaml:"break_started_at,omitempty"`
	BreakEndedAt        *time.Time `db:"break_ended_at" json:"break_ended_at,omitempty" yaml:"break_ended_at,omitempty"`
	BreakStreakSnapshot *int       `db:"break_streak_snapshot" json:"break_streak_snapshot,omitempty" yaml:"break_streak_snapshot,omitempty"`
	StreakCarryover     *int       `db:"streak_carryover" json:"streak_carryover,omitempty" yaml:"streak_carryover,omitempty"`

	// Mirror of verified submission dates for quick reads. Not authoritative.
	CompletedDates DateSet `db:"completed_dates" json:"completed_dates" yaml:"completed_dates"`

	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at" yaml:"updated_at"`
}

func (g *Goal) IsWeekly() bool {
	return g.Frequency == FrequencyWeekly
}

func ValidFrequency(f string) bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

func ValidGracePeriod(p string) bool {
	switch p {
	case GracePeriod1h, GracePeriod3h, GracePeriod6h, GracePeriod12h, GracePeriodEndOfDay:
		return true
	}
	return false
}

// DateSet is an ordered set of yyyy-mm-dd strings stored as a JSON array.
type DateSet []string

// Add inserts date keeping the set sorted and unique. Reports whether it was new.
func (d *DateSet) Add(date string) bool {
	i, found := slices.BinarySearch(*d, date)
	if found {
		return false
	}
	*d = slices.Insert(*d, i, date)
	return true
}

func (d DateSet) Contains(date string) bool {
	_, found := slices.BinarySearch(d, date)
	return found
}

func (d DateSet) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DateSet) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = DateSet{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported completed_dates type %T", src)
	}

	if len(raw) == 0 {
		*d = DateSet{}
		return nil
	}

	var dates []string
	err := json.Unmarshal(raw, &dates)
	if err != nil {
		return fmt.Errorf("failed to decode completed_dates: %w", err)
	}

	slices.Sort(dates)
	*d = DateSet(slices.Compact(dates))
	return nil
}

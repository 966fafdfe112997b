package model

import (
	"time"
)

type Subscription struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	PlanID    string    `db:"plan_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	SubscriptionPlanFree       = "free"
	SubscriptionPlanPro        = "pro"
	SubscriptionPlanEnterprise = "enterprise"
)

func ValidPlan(plan string) bool {
	switch plan {
	case SubscriptionPlanFree, SubscriptionPlanPro, SubscriptionPlanEnterprise:
		return true
	}
	return false
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

func (s *Subscription) IsPaid() bool {
	return s.PlanID != SubscriptionPlanFree && s.IsActive()
}

// GoalLimit returns the maximum number of goals allowed for this plan
// Returns -1 for unlimited
func (s *Subscription) GoalLimit() int {
	if !s.IsActive() {
		return 3 // Free tier default
	}

	switch s.PlanID {
	case SubscriptionPlanPro:
		return 25
	case SubscriptionPlanEnterprise:
		return -1
	default:
		return 3
	}
}

// MaxBreakDays returns how long a goal may stay on break before it is
// resumed automatically. 0 means breaks are not part of the plan, -1 means
// no limit.
func (s *Subscription) MaxBreakDays() int {
	if !s.IsActive() {
		return 0
	}

	switch s.PlanID {
	case SubscriptionPlanFree:
		return 7
	case SubscriptionPlanPro:
		return 30
	case SubscriptionPlanEnterprise:
		return -1
	default:
		return 0
	}
}

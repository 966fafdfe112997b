package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionLimits(t *testing.T) {
	tests := []struct {
		plan      string
		status    string
		goals     int
		breakDays int
	}{
		{SubscriptionPlanFree, SubscriptionStatusActive, 3, 7},
		{SubscriptionPlanPro, SubscriptionStatusActive, 25, 30},
		{SubscriptionPlanEnterprise, SubscriptionStatusActive, -1, -1},
		{SubscriptionPlanPro, SubscriptionStatusCancelled, 3, 0},
		{"legacy", SubscriptionStatusActive, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.plan+"/"+tt.status, func(t *testing.T) {
			s := &Subscription{PlanID: tt.plan, Status: tt.status}
			assert.Equal(t, tt.goals, s.GoalLimit())
			assert.Equal(t, tt.breakDays, s.MaxBreakDays())
		})
	}
}

func TestValidPlan(t *testing.T) {
	assert.True(t, ValidPlan("pro"))
	assert.False(t, ValidPlan("gold"))
}

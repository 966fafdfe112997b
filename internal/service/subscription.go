package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
)

var (
	ErrUnknownPlan = errors.New("unknown plan")
)

type SubscriptionService struct {
	repo  repository.SubscriptionRepository
	clock clock.Clock
}

func NewSubscriptionService(repo repository.SubscriptionRepository, clk clock.Clock) *SubscriptionService {
	return &SubscriptionService{repo: repo, clock: clk}
}

func (s *SubscriptionService) CreateFreeSubscription(userID string) error {
	now := s.clock.Now()
	subscription := &model.Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlanID:    model.SubscriptionPlanFree,
		Status:    model.SubscriptionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(subscription)
	if err != nil {
		return fmt.Errorf("failed to create free subscription: %w", err)
	}

	return nil
}

func (s *SubscriptionService) Subscription(userID string) (*model.Subscription, error) {
	sub, err := s.repo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return sub, nil
}

// ChangePlan moves a user onto plan and reactivates the subscription.
func (s *SubscriptionService) ChangePlan(userID, plan string) (*model.Subscription, error) {
	if !model.ValidPlan(plan) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}

	sub, err := s.Subscription(userID)
	if err != nil {
		return nil, err
	}

	sub.PlanID = plan
	sub.Status = model.SubscriptionStatusActive
	sub.UpdatedAt = s.clock.Now()

	err = s.repo.Update(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	return sub, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/validation"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
)

type UserService struct {
	userRepository      repository.UserRepository
	fileService         *FileService
	emailService        *EmailService
	subscriptionService *SubscriptionService
	clock               clock.Clock
}

func NewUserService(
	userRepository repository.UserRepository,
	fileService *FileService,
	emailService *EmailService,
	subscriptionService *SubscriptionService,
	clk clock.Clock,
) *UserService {
	return &UserService{
		userRepository:      userRepository,
		fileService:         fileService,
		emailService:        emailService,
		subscriptionService: subscriptionService,
		clock:               clk,
	}
}

// Create registers a user on the free plan and sends the welcome email.
func (s *UserService) Create(ctx context.Context, email string) (*model.User, error) {
	email = validation.NormalizeEmail(email)
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: s.clock.Now(),
	}

	err = s.userRepository.Create(user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.subscriptionService.CreateFreeSubscription(user.ID)
	if err != nil {
		delErr := s.userRepository.Delete(user.ID)
		if delErr != nil {
			slog.Error("failed to delete user during rollback", "error", delErr, "user_id", user.ID)
		}
		return nil, err
	}

	err = s.emailService.SendWelcomeEmail(ctx, user.Email)
	if err != nil {
		slog.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
	}

	return user, nil
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *UserService) ByEmail(email string) (*model.User, error) {
	return s.userRepository.ByEmail(validation.NormalizeEmail(email))
}

func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	_, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = s.fileService.DeleteAllUserFilesFromStorage(ctx, userID)
	if err != nil {
		// Log warning but don't fail - orphaned files are better than failed deletion
		slog.Warn("failed to delete user files from storage", "user_id", userID, "error", err)
	}

	// Foreign key CASCADE removes goals, submissions, files and the subscription
	err = s.userRepository.Delete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

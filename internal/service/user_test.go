package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/model"
)

func TestCreateUser(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	user, err := e.users.Create(ctx, "  Ada@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	sub, err := e.subscriptions.Subscription(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionPlanFree, sub.PlanID)
	assert.True(t, sub.IsActive())

	_, err = e.users.Create(ctx, "ada@example.com")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = e.users.Create(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	got, err := e.users.ByEmail("ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestTokenRoundTrip(t *testing.T) {
	clk := clock.NewFixed(saturday)
	tokens := NewTokenService("secret", time.Hour, clk)
	user := &model.User{ID: "user-1", Email: "ada@example.com"}

	token, expiresAt, err := tokens.GenerateJWT(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(saturday.Add(time.Hour)))

	userID, err := tokens.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = NewTokenService("other", time.Hour, clk).VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.VerifyJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	clk.Advance(2 * time.Hour)
	_, err = tokens.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

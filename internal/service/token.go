package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// TokenService issues and checks the bearer tokens the API accepts.
// Sign-in flows live outside this service; the CLI mints tokens for users.
type TokenService struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

func NewTokenService(secret string, expiry time.Duration, clk clock.Clock) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry, clock: clk}
}

func (s *TokenService) GenerateJWT(user *model.User) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.expiry)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// VerifyJWT returns the user ID carried by a valid token.
func (s *TokenService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

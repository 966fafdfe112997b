// Package verify decides whether a proof photo shows the goal being done.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/proofstreak/internal/metrics"
)

// ErrUnavailable means no verifier produced an answer. The submission is kept as pending.
var ErrUnavailable = errors.New("verification unavailable")

type Photo struct {
	Data     []byte
	MimeType string
}

type Result struct {
	Verified bool
	Feedback string
	// Model names the verifier that answered.
	Model string
}

type Verifier interface {
	Verify(ctx context.Context, photo Photo, title, description string) (Result, error)
	Name() string
}

// Chain asks each verifier in order and returns the first answer.
type Chain struct {
	verifiers []Verifier
}

func NewChain(verifiers ...Verifier) *Chain {
	return &Chain{verifiers: verifiers}
}

func (c *Chain) Name() string {
	return "chain"
}

func (c *Chain) Verify(ctx context.Context, photo Photo, title, description string) (Result, error) {
	var errs []error
	for _, v := range c.verifiers {
		start := time.Now()
		res, err := v.Verify(ctx, photo, title, description)
		metrics.VerificationDuration.WithLabelValues(v.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.VerificationsTotal.WithLabelValues(v.Name(), "error").Inc()
			slog.Warn("verifier failed, trying next", "verifier", v.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", v.Name(), err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		outcome := "rejected"
		if res.Verified {
			outcome = "verified"
		}
		metrics.VerificationsTotal.WithLabelValues(v.Name(), outcome).Inc()

		if res.Model == "" {
			res.Model = v.Name()
		}
		return res, nil
	}

	if len(errs) == 0 {
		return Result{}, ErrUnavailable
	}
	return Result{}, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

// Static returns the same answer for every photo.
type Static struct {
	Verified bool
	Feedback string
}

// AutoApprove accepts every photo. Development only.
func AutoApprove() Static {
	return Static{Verified: true, Feedback: "Auto-approved"}
}

func (s Static) Name() string {
	return "static"
}

func (s Static) Verify(ctx context.Context, photo Photo, title, description string) (Result, error) {
	if len(photo.Data) == 0 {
		return Result{}, errors.New("empty photo")
	}
	return Result{Verified: s.Verified, Feedback: s.Feedback, Model: s.Name()}, nil
}

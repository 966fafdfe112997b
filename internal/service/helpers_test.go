package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/db/dbtest"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/storage"
	"github.com/templui/proofstreak/internal/verify"
)

// Saturday 14 March 2026, 10:00 UTC.
var saturday = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

var pngPhoto = PhotoUpload{
	Filename: "proof.png",
	Data:     []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01"),
}

// stubVerifier returns whatever the test last set. during, when set, runs
// while the verification is in flight.
type stubVerifier struct {
	mu     sync.Mutex
	result verify.Result
	err    error
	calls  int
	during func()
}

func (v *stubVerifier) Name() string { return "stub" }

func (v *stubVerifier) Verify(ctx context.Context, photo verify.Photo, title, description string) (verify.Result, error) {
	v.mu.Lock()
	v.calls++
	result, err, during := v.result, v.err, v.during
	v.mu.Unlock()

	if during != nil {
		during()
	}
	return result, err
}

func (v *stubVerifier) whileVerifying(fn func()) {
	v.mu.Lock()
	v.during = fn
	v.mu.Unlock()
}

func (v *stubVerifier) set(result verify.Result, err error) {
	v.mu.Lock()
	v.result, v.err = result, err
	v.mu.Unlock()
}

type testEnv struct {
	db             *sqlx.DB
	clock          *clock.Fixed
	verifier       *stubVerifier
	goalRepo       repository.GoalRepository
	submissionRepo repository.SubmissionRepository
	fileRepo       repository.FileRepository
	subRepo        repository.SubscriptionRepository
	users          *UserService
	goals          *GoalService
	submissions    *SubmissionService
	subscriptions  *SubscriptionService
	dashboard      *DashboardService
	files          *FileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := dbtest.Open(t)
	clk := clock.NewFixed(saturday)
	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	e := &testEnv{
		db:             database,
		clock:          clk,
		verifier:       &stubVerifier{result: verify.Result{Verified: true, Feedback: "Looks good", Model: "stub"}},
		goalRepo:       repository.NewGoalRepository(database),
		submissionRepo: repository.NewSubmissionRepository(database),
		fileRepo:       repository.NewFileRepository(database),
		subRepo:        repository.NewSubscriptionRepository(database),
	}
	userRepo := repository.NewUserRepository(database)
	email := NewEmailService("", "test@example.com", "http://localhost:8090", "proofstreak", true)

	e.files = NewFileService(e.fileRepo, store, clk)
	e.subscriptions = NewSubscriptionService(e.subRepo, clk)
	e.users = NewUserService(userRepo, e.files, email, e.subscriptions, clk)
	e.goals = NewGoalService(e.goalRepo, e.submissionRepo, userRepo, e.files, e.subscriptions, email, clk)
	e.submissions = NewSubmissionService(e.submissionRepo, e.goalRepo, e.files, e.verifier, clk)
	e.dashboard = NewDashboardService(e.goalRepo, e.submissionRepo, clk)
	return e
}

func (e *testEnv) user(t *testing.T, email string) *model.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), email)
	require.NoError(t, err)
	return user
}

func (e *testEnv) goal(t *testing.T, userID string, in GoalInput) *model.Goal {
	t.Helper()
	if in.Title == "" {
		in.Title = "Morning run"
	}
	goal, err := e.goals.Create(userID, in)
	require.NoError(t, err)
	return goal
}

func (e *testEnv) at(day, hour int) {
	e.clock.Set(time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC))
}

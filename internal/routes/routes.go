package routes

import (
	"net/http"

	"github.com/templui/proofstreak/internal/app"
	"github.com/templui/proofstreak/internal/handler"
	"github.com/templui/proofstreak/internal/metrics"
	"github.com/templui/proofstreak/internal/middleware"
)

func SetupRoutes(app *app.App, submitLimiter *middleware.RateLimiter) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	account := handler.NewAccountHandler(app.UserService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)
	goal := handler.NewGoalHandler(app.GoalService)
	submission := handler.NewSubmissionHandler(app.SubmissionService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", metrics.Handler())

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/me", middleware.Protected(nil, account.Me))
	mux.HandleFunc("DELETE /api/account", middleware.Protected(nil, account.Delete))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", middleware.Protected(nil, dashboard.Progress))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.Protected(nil, goal.List))
	mux.HandleFunc("POST /api/goals", middleware.Protected(nil, goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.Protected(nil, goal.Get))
	mux.HandleFunc("PATCH /api/goals/{id}", middleware.Protected(nil, goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.Protected(nil, goal.Delete))

	// Breaks
	mux.HandleFunc("POST /api/goals/{id}/break", middleware.Protected(nil, goal.StartBreak))
	mux.HandleFunc("DELETE /api/goals/{id}/break", middleware.Protected(nil, goal.EndBreak))

	// Submissions (uploads are rate limited per user)
	mux.HandleFunc("GET /api/goals/{id}/submissions", middleware.Protected(nil, submission.List))
	mux.HandleFunc("POST /api/goals/{id}/submissions", middleware.Protected(submitLimiter, submission.Create))
	mux.HandleFunc("POST /api/submissions/{id}/verify", middleware.Protected(submitLimiter, submission.Reverify))

	// Local proof photos (S3 serves presigned links instead)
	if !app.Cfg.UsesS3() {
		uploads := handler.NewUploadHandler(app.Storage)
		mux.HandleFunc("GET /uploads/{path...}", middleware.Protected(nil, uploads.Serve))
	}

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.TokenService, app.UserService, app.SubscriptionService),
	)

	return handler
}

package handler

import (
	"net/http"

	"github.com/templui/proofstreak/internal/ctxkeys"
	"github.com/templui/proofstreak/internal/service"
)

type AccountHandler struct {
	userService *service.UserService
}

func NewAccountHandler(userService *service.UserService) *AccountHandler {
	return &AccountHandler{
		userService: userService,
	}
}

type accountResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Plan         string `json:"plan"`
	GoalLimit    int    `json:"goal_limit"`
	MaxBreakDays int    `json:"max_break_days"`
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	subscription := ctxkeys.Subscription(r.Context())

	writeJSON(w, http.StatusOK, accountResponse{
		ID:           user.ID,
		Email:        user.Email,
		Plan:         subscription.PlanID,
		GoalLimit:    subscription.GoalLimit(),
		MaxBreakDays: subscription.MaxBreakDays(),
	})
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "failed to delete account", "user_id", user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

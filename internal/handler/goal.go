package handler

import (
	"net/http"

	"github.com/templui/proofstreak/internal/ctxkeys"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type createGoalRequest struct {
	Title        string `json:"title" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=1000"`
	Frequency    string `json:"frequency" validate:"omitempty,oneof=daily weekly"`
	ReminderTime string `json:"reminder_time" validate:"omitempty,hhmm"`
	ReminderDay  *int   `json:"reminder_day" validate:"omitempty,gte=0,lte=6"`
	GracePeriod  string `json:"grace_period" validate:"omitempty,oneof=1h 3h 6h 12h eod"`
}

type updateGoalRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	Frequency    *string `json:"frequency" validate:"omitempty,oneof=daily weekly"`
	ReminderTime *string `json:"reminder_time" validate:"omitempty,hhmm"`
	ReminderDay  *int    `json:"reminder_day" validate:"omitempty,gte=0,lte=6"`
	GracePeriod  *string `json:"grace_period" validate:"omitempty,oneof=1h 3h 6h 12h eod"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = repository.GoalSortRecent
	}

	goals, err := h.goalService.List(r.Context(), user.ID, sortBy)
	if err != nil {
		writeServiceError(w, err, "failed to list goals", "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.Create(user.ID, service.GoalInput{
		Title:        req.Title,
		Description:  req.Description,
		Frequency:    req.Frequency,
		ReminderTime: req.ReminderTime,
		ReminderDay:  req.ReminderDay,
		GracePeriod:  req.GracePeriod,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create goal", "user_id", user.ID)
		return
	}

	view, err := h.goalService.View(user.ID, goal.ID)
	if err != nil {
		writeServiceError(w, err, "failed to load goal", "user_id", user.ID, "goal_id", goal.ID)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	view, err := h.goalService.View(user.ID, goalID)
	if err != nil {
		writeServiceError(w, err, "failed to load goal", "user_id", user.ID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req updateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := h.goalService.Update(user.ID, goalID, service.GoalPatch{
		Title:        req.Title,
		Description:  req.Description,
		Frequency:    req.Frequency,
		ReminderTime: req.ReminderTime,
		ReminderDay:  req.ReminderDay,
		GracePeriod:  req.GracePeriod,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update goal", "user_id", user.ID, "goal_id", goalID)
		return
	}

	h.Get(w, r)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(r.Context(), user.ID, goalID)
	if err != nil {
		writeServiceError(w, err, "failed to delete goal", "user_id", user.ID, "goal_id", goalID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) StartBreak(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	_, err := h.goalService.StartBreak(user.ID, goalID)
	if err != nil {
		writeServiceError(w, err, "failed to start break", "user_id", user.ID, "goal_id", goalID)
		return
	}

	h.Get(w, r)
}

func (h *GoalHandler) EndBreak(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	_, err := h.goalService.EndBreak(user.ID, goalID)
	if err != nil {
		writeServiceError(w, err, "failed to end break", "user_id", user.ID, "goal_id", goalID)
		return
	}

	h.Get(w, r)
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/schedule"
	"github.com/templui/proofstreak/internal/service"
	"github.com/templui/proofstreak/internal/verify"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// verifyRetryAfterSeconds is sent with 503s while every verifier is down.
const verifyRetryAfterSeconds = 60

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, _, ok := schedule.ParseReminderTime(fl.Field().String())
		return ok
	})
	return v
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	Reason string            `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	err = validate.Struct(dst)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fieldMessage(fe)
			}
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "hhmm":
		return "must be a time in HH:MM format"
	case "min", "gte", "lte":
		return "is out of range"
	}
	return "is invalid"
}

// writeServiceError maps service and repository errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	var gateErr *service.GateError
	switch {
	case errors.As(err, &gateErr):
		status := http.StatusForbidden
		if errors.Is(err, service.ErrPeriodAlreadySatisfied) {
			status = http.StatusConflict
		}
		writeJSON(w, status, errorResponse{Error: gateErr.Error(), Reason: gateErr.Decision.Reason})
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrPeriodAlreadySatisfied):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Reason: schedule.ReasonAlreadySatisfied})
	case errors.Is(err, service.ErrInvalidGoal),
		errors.Is(err, service.ErrInvalidPhoto):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrGoalLimitReached),
		errors.Is(err, service.ErrBreaksNotInPlan):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrFrequencyLocked),
		errors.Is(err, service.ErrNotPending):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, verify.ErrUnavailable):
		slog.Warn(msg, append([]any{"error", err}, attrs...)...)
		w.Header().Set("Retry-After", strconv.Itoa(verifyRetryAfterSeconds))
		writeError(w, http.StatusServiceUnavailable, "photo verification is unavailable, try again later")
	default:
		slog.Error(msg, append([]any{"error", err}, attrs...)...)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

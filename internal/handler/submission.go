package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/templui/proofstreak/internal/ctxkeys"
	"github.com/templui/proofstreak/internal/service"
	"github.com/templui/proofstreak/internal/validation"
)

// maxUploadSize leaves room for multipart overhead around the photo.
const maxUploadSize = 6 << 20

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	subs, err := h.submissionService.List(r.Context(), user.ID, goalID)
	if err != nil {
		writeServiceError(w, err, "failed to list submissions", "user_id", user.ID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

// Create accepts a multipart upload with the proof in the "photo" field.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "photo is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "expected a multipart form with a photo")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo is required")
		return
	}
	defer func() { _ = file.Close() }()

	err = validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read photo")
		return
	}

	result, err := h.submissionService.Submit(r.Context(), user.ID, goalID, service.PhotoUpload{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		writeServiceError(w, err, "failed to submit proof", "user_id", user.ID, "goal_id", goalID)
		return
	}

	status := http.StatusCreated
	if !result.Submission.IsVerified() {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

func (h *SubmissionHandler) Reverify(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	submissionID := r.PathValue("id")

	sub, err := h.submissionService.Reverify(r.Context(), user.ID, submissionID)
	if err != nil {
		writeServiceError(w, err, "failed to reverify submission", "user_id", user.ID, "submission_id", submissionID)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

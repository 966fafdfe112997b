package handler

import (
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/templui/proofstreak/internal/ctxkeys"
	"github.com/templui/proofstreak/internal/storage"
)

// UploadHandler serves locally stored proof photos to their owner.
type UploadHandler struct {
	storage storage.Storage
}

func NewUploadHandler(storage storage.Storage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	rel := path.Clean("/" + r.PathValue("path"))[1:]

	if !strings.HasPrefix(rel, "private/proof_photos/"+user.ID+"/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	rc, err := h.storage.Open(r.Context(), rel)
	if err != nil {
		slog.Debug("upload not found", "path", rel, "error", err)
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Cache-Control", "private, max-age=3600")
	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, path.Base(rel), time.Time{}, rs)
		return
	}
	_, _ = io.Copy(w, rc)
}

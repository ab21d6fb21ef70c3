package handlers

import (
	"FileNest/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// NoteHandler обрабатывает CRUD и поиск заметок.
type NoteHandler struct {
	Service *service.NoteService
	Logger  *zap.SugaredLogger
}

// NewNoteHandler создаёт хендлер заметок.
func NewNoteHandler(svc *service.NoteService, logger *zap.SugaredLogger) *NoteHandler {
	return &NoteHandler{Service: svc, Logger: logger}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch notes")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeErrorMsg(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	notes, err := h.Service.Search(r.Context(), q)
	if err != nil {
		writeError(w, h.Logger, err, "failed to search notes")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	n, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch note")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	n, err := h.Service.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.Logger, err, "failed to create note")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req service.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	n, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, h.Logger, err, "failed to update note")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err, "failed to delete note")
		return
	}
	if !deleted {
		writeErrorMsg(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

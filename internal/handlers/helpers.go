package handlers

import (
	"FileNest/internal/repo"
	"FileNest/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError отображает ошибку сервиса в HTTP-статус:
// NotFound → 404, валидация → 400, остальное → 500 с общим текстом.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error, fallback string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeErrorMsg(w, http.StatusNotFound, "not found")
	case service.IsValidation(err):
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
	default:
		logger.Errorw(fallback, "error", err)
		writeErrorMsg(w, http.StatusInternalServerError, fallback)
	}
}

// idParam читает целочисленный {id} из пути.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parentIDQuery читает опциональный parentId из query-строки.
func parentIDQuery(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("parentId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// limitQuery читает опциональный limit, отдавая def при отсутствии.
func limitQuery(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

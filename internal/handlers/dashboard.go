package handlers

import (
	"FileNest/internal/model"
	"FileNest/internal/service"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DashboardHandler отдаёт агрегаты для дашборда.
type DashboardHandler struct {
	Service *service.StatsService
	Logger  *zap.SugaredLogger
}

// NewDashboardHandler создаёт хендлер дашборда.
func NewDashboardHandler(svc *service.StatsService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{Service: svc, Logger: logger}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) FileTypes(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.FileTypes(r.Context())
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch file type stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) RecentFiles(w http.ResponseWriter, r *http.Request) {
	recent, err := h.Service.Recent(r.Context(), limitQuery(r, 5))
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch recent files")
		return
	}
	writeJSON(w, http.StatusOK, recent)
}

func (h *DashboardHandler) LargestFiles(w http.ResponseWriter, r *http.Request) {
	largest, err := h.Service.Largest(r.Context(), limitQuery(r, 10))
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch largest files")
		return
	}
	writeJSON(w, http.StatusOK, largest)
}

// SearchHandler — сквозной поиск по файлам и заметкам.
type SearchHandler struct {
	Files  *service.FileService
	Notes  *service.NoteService
	Logger *zap.SugaredLogger
}

// NewSearchHandler создаёт хендлер сквозного поиска.
func NewSearchHandler(files *service.FileService, notes *service.NoteService, logger *zap.SugaredLogger) *SearchHandler {
	return &SearchHandler{Files: files, Notes: notes, Logger: logger}
}

type searchResponse struct {
	Files []model.File `json:"files"`
	Notes []model.Note `json:"notes"`
}

// Search: пустой запрос — это пустой результат, не ошибка.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusOK, searchResponse{Files: []model.File{}, Notes: []model.Note{}})
		return
	}

	files, err := h.Files.Search(r.Context(), q)
	if err != nil {
		writeError(w, h.Logger, err, "search failed")
		return
	}
	notes, err := h.Notes.Search(r.Context(), q)
	if err != nil {
		writeError(w, h.Logger, err, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Files: files, Notes: notes})
}

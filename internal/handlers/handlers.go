package handlers

import (
	"FileNest/internal/config"
	"FileNest/internal/middleware"
	"FileNest/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	fileService *service.FileService,
	noteService *service.NoteService,
	statsService *service.StatsService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	fileHandler := NewFileHandler(fileService, logger, cfg)
	noteHandler := NewNoteHandler(noteService, logger)
	dashHandler := NewDashboardHandler(statsService, logger)
	searchHandler := NewSearchHandler(fileService, noteService, logger)

	// Files
	r.Get("/api/files", fileHandler.List)
	r.Get("/api/files/search", fileHandler.Search)
	r.Get("/api/files/{id}", fileHandler.Get)
	r.Post("/api/files/upload", fileHandler.Upload)
	r.Post("/api/files/folder", fileHandler.CreateFolder)
	r.Put("/api/files/{id}", fileHandler.Update)
	r.Delete("/api/files/{id}", fileHandler.Delete)

	// Notes
	r.Get("/api/notes", noteHandler.List)
	r.Get("/api/notes/search", noteHandler.Search)
	r.Get("/api/notes/{id}", noteHandler.Get)
	r.Post("/api/notes", noteHandler.Create)
	r.Put("/api/notes/{id}", noteHandler.Update)
	r.Delete("/api/notes/{id}", noteHandler.Delete)

	// Combined search
	r.Get("/api/search", searchHandler.Search)

	// Dashboard
	r.Get("/api/dashboard/stats", dashHandler.Stats)
	r.Get("/api/dashboard/file-types", dashHandler.FileTypes)
	r.Get("/api/dashboard/recent-files", dashHandler.RecentFiles)
	r.Get("/api/dashboard/largest-files", dashHandler.LargestFiles)

	// Раздача загруженных блобов и их превью
	r.Get("/uploads/{filename}", fileHandler.ServeBlob)
	r.Get("/uploads/thumbnail/{filename}", fileHandler.ServeThumbnail)

	return &Handler{Router: r}
}

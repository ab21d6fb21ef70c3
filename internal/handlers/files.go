package handlers

import (
	"FileNest/internal/config"
	"FileNest/internal/service"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler обрабатывает операции с файлами и папками.
type FileHandler struct {
	Service *service.FileService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewFileHandler создаёт хендлер файлов.
func NewFileHandler(svc *service.FileService, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{Service: svc, Logger: logger, Config: cfg}
}

// List отдаёт детей папки parentId; без параметра — корневой уровень.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	parentID, err := parentIDQuery(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid parentId")
		return
	}
	files, err := h.Service.List(r.Context(), parentID)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch files")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *FileHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeErrorMsg(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	files, err := h.Service.Search(r.Context(), q)
	if err != nil {
		writeError(w, h.Logger, err, "failed to search files")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	f, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch file")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Upload принимает multipart-форму с полем "files" и опциональным parentId.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeErrorMsg(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	var parentID *int64
	if raw := r.FormValue("parentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "invalid parentId")
			return
		}
		parentID = &id
	}

	uploads := make([]service.Upload, 0, len(headers))
	opened := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}()
	for _, fh := range headers {
		if fh.Size > h.Config.MaxUploadSize {
			writeErrorMsg(w, http.StatusRequestEntityTooLarge, "file too large: "+fh.Filename)
			return
		}
		src, err := fh.Open()
		if err != nil {
			writeError(w, h.Logger, err, "failed to read upload")
			return
		}
		opened = append(opened, src)
		uploads = append(uploads, service.Upload{
			OriginalName: fh.Filename,
			MimeType:     fh.Header.Get("Content-Type"),
			Size:         fh.Size,
			Data:         src,
		})
	}

	saved, err := h.Service.UploadFiles(r.Context(), uploads, parentID)
	if err != nil {
		writeError(w, h.Logger, err, "failed to upload files")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
}

func (h *FileHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	folder, err := h.Service.CreateFolder(r.Context(), req.Name, req.ParentID)
	if err != nil {
		writeError(w, h.Logger, err, "failed to create folder")
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (h *FileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req service.UpdateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	f, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, h.Logger, err, "failed to update file")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err, "failed to delete file")
		return
	}
	if !deleted {
		writeErrorMsg(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ServeBlob отдаёт содержимое блоба по его имени на диске.
// Путь берём из записи, а не из URL — это заодно исключает выход за корень.
func (h *FileHandler) ServeBlob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	files, err := h.Service.Search(r.Context(), name)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch file")
		return
	}
	for _, f := range files {
		if f.Name != name || f.IsFolder {
			continue
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		http.ServeFile(w, r, f.Path)
		return
	}
	writeErrorMsg(w, http.StatusNotFound, "not found")
}

// ServeThumbnail отдаёт превью блоба. Пока это сам оригинал с годовым кешом;
// настоящая генерация миниатюр — отдельная задача.
func (h *FileHandler) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	files, err := h.Service.Search(r.Context(), name)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch file")
		return
	}
	for _, f := range files {
		if f.Name != name || f.IsFolder {
			continue
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000")
		w.Header().Set("Content-Type", "image/jpeg")
		http.ServeFile(w, r, f.Path)
		return
	}
	writeErrorMsg(w, http.StatusNotFound, "not found")
}

package service

import (
	"FileNest/internal/model"
	"FileNest/internal/repo"
	"context"

	"go.uber.org/zap"
)

// NoteService — бизнес-логика заметок: валидация, палитра цветов,
// нормализация тегов.
type NoteService struct {
	notes  repo.NoteRepository
	logger *zap.SugaredLogger
}

// NewNoteService создаёт сервис заметок.
func NewNoteService(notes repo.NoteRepository, logger *zap.SugaredLogger) *NoteService {
	return &NoteService{notes: notes, logger: logger}
}

// CreateNoteRequest — вход создания заметки.
type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Color    string   `json:"color"`
	IsPinned bool     `json:"isPinned"`
	Tags     []string `json:"tags"`
}

// UpdateNoteRequest — частичное обновление заметки.
type UpdateNoteRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Color    *string   `json:"color,omitempty"`
	IsPinned *bool     `json:"isPinned,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

func (s *NoteService) List(ctx context.Context) ([]model.Note, error) {
	return s.notes.List(ctx)
}

func (s *NoteService) Get(ctx context.Context, id int64) (*model.Note, error) {
	return s.notes.Get(ctx, id)
}

func (s *NoteService) Search(ctx context.Context, query string) ([]model.Note, error) {
	return s.notes.Search(ctx, query)
}

// Create валидирует вход и сохраняет заметку.
// Неизвестный цвет тихо заменяется на "default".
func (s *NoteService) Create(ctx context.Context, req CreateNoteRequest) (*model.Note, error) {
	if req.Title == "" {
		return nil, validationErrorf("title is required")
	}
	if req.Content == "" {
		return nil, validationErrorf("content is required")
	}

	color := req.Color
	if !model.ValidColor(color) {
		color = "default"
	}

	n := &model.Note{
		Title:    req.Title,
		Content:  req.Content,
		Color:    color,
		IsPinned: req.IsPinned,
		Tags:     NormalizeTags(req.Tags),
	}
	return s.notes.Create(ctx, n)
}

// Update применяет частичное обновление; пустой title/content отклоняются.
func (s *NoteService) Update(ctx context.Context, id int64, req UpdateNoteRequest) (*model.Note, error) {
	updates := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, validationErrorf("title must not be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, validationErrorf("content must not be empty")
		}
		updates["content"] = *req.Content
	}
	if req.Color != nil {
		c := *req.Color
		if !model.ValidColor(c) {
			c = "default"
		}
		updates["color"] = c
	}
	if req.IsPinned != nil {
		updates["is_pinned"] = *req.IsPinned
	}
	if req.Tags != nil {
		updates["tags"] = NormalizeTags(*req.Tags)
	}
	if len(updates) == 0 {
		return nil, validationErrorf("no fields to update")
	}
	return s.notes.Update(ctx, id, updates)
}

// Delete удаляет заметку; false — если её не было.
func (s *NoteService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.notes.Delete(ctx, id)
}

package repo

import (
	"FileNest/internal/model"
	"context"
	"strings"
	"sync"
	"time"
)

// fileMemRepo — in-memory альтернатива durable-хранилищу.
// Контракт тот же: id = max+1, обе метки времени при создании,
// last_modified при каждом обновлении.
type fileMemRepo struct {
	mu    sync.Mutex
	files []model.File
}

// NewFileMemRepository создаёт in-memory реализацию репозитория файлов.
func NewFileMemRepository() FileRepository {
	return &fileMemRepo{}
}

func (r *fileMemRepo) List(_ context.Context, parentID *int64) ([]model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.File, 0)
	for _, f := range r.files {
		if parentID == nil {
			if f.ParentID == nil {
				out = append(out, f)
			}
		} else if f.ParentID != nil && *f.ParentID == *parentID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fileMemRepo) ListAll(_ context.Context) ([]model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.File, len(r.files))
	copy(out, r.files)
	return out, nil
}

func (r *fileMemRepo) Get(_ context.Context, id int64) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.files {
		if r.files[i].ID == id {
			f := r.files[i]
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileMemRepo) Create(_ context.Context, f *model.File) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, e := range r.files {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	now := time.Now()
	f.ID = maxID + 1
	f.UploadDate = now
	f.LastModified = now
	r.files = append(r.files, *f)
	return f, nil
}

func (r *fileMemRepo) Update(_ context.Context, id int64, updates map[string]any) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.files {
		if r.files[i].ID != id {
			continue
		}
		applyFileUpdates(&r.files[i], updates)
		r.files[i].LastModified = time.Now()
		f := r.files[i]
		return &f, nil
	}
	return nil, ErrNotFound
}

// applyFileUpdates принимает те же ключи-колонки, что и durable-реализация.
func applyFileUpdates(f *model.File, updates map[string]any) {
	for k, v := range updates {
		switch k {
		case "name":
			if s, ok := v.(string); ok {
				f.Name = s
			}
		case "original_name":
			if s, ok := v.(string); ok {
				f.OriginalName = s
			}
		case "path":
			if s, ok := v.(string); ok {
				f.Path = s
			}
		case "size":
			if n, ok := v.(int64); ok {
				f.Size = n
			}
		case "mime_type":
			if s, ok := v.(string); ok {
				f.MimeType = s
			}
		case "parent_id":
			if p, ok := v.(*int64); ok {
				f.ParentID = p
			}
		case "metadata":
			if m, ok := v.(map[string]any); ok {
				f.Metadata = m
			}
		}
	}
}

func (r *fileMemRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.files {
		if r.files[i].ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fileMemRepo) Search(_ context.Context, query string) ([]model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]model.File, 0)
	for _, f := range r.files {
		if strings.Contains(strings.ToLower(f.Name), q) ||
			strings.Contains(strings.ToLower(f.OriginalName), q) {
			out = append(out, f)
		}
	}
	return out, nil
}

package repo

import (
	"FileNest/internal/model"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type noteMemRepo struct {
	mu    sync.Mutex
	notes []model.Note
}

// NewNoteMemRepository создаёт in-memory реализацию репозитория заметок.
func NewNoteMemRepository() NoteRepository {
	return &noteMemRepo{}
}

func (r *noteMemRepo) List(_ context.Context) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Note, len(r.notes))
	copy(out, r.notes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *noteMemRepo) Get(_ context.Context, id int64) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notes {
		if r.notes[i].ID == id {
			n := r.notes[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

func (r *noteMemRepo) Create(_ context.Context, n *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, e := range r.notes {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	now := time.Now()
	n.ID = maxID + 1
	n.CreatedAt = now
	n.UpdatedAt = now
	r.notes = append(r.notes, *n)
	return n, nil
}

func (r *noteMemRepo) Update(_ context.Context, id int64, updates map[string]any) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notes {
		if r.notes[i].ID != id {
			continue
		}
		applyNoteUpdates(&r.notes[i], updates)
		r.notes[i].UpdatedAt = time.Now()
		n := r.notes[i]
		return &n, nil
	}
	return nil, ErrNotFound
}

func applyNoteUpdates(n *model.Note, updates map[string]any) {
	for k, v := range updates {
		switch k {
		case "title":
			if s, ok := v.(string); ok {
				n.Title = s
			}
		case "content":
			if s, ok := v.(string); ok {
				n.Content = s
			}
		case "color":
			if s, ok := v.(string); ok {
				n.Color = s
			}
		case "is_pinned":
			if b, ok := v.(bool); ok {
				n.IsPinned = b
			}
		case "tags":
			if t, ok := v.([]string); ok {
				n.Tags = t
			}
		}
	}
}

func (r *noteMemRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notes {
		if r.notes[i].ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *noteMemRepo) Search(_ context.Context, query string) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]model.Note, 0)
	for i := range r.notes {
		if noteMatches(&r.notes[i], q) {
			out = append(out, r.notes[i])
		}
	}
	return out, nil
}

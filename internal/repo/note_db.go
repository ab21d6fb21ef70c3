package repo

import (
	"FileNest/internal/model"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

type noteRepo struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewNoteRepository создаёт durable-реализацию репозитория заметок.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.WithContext(ctx).
		Order("is_pinned DESC").
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) Get(ctx context.Context, id int64) (*model.Note, error) {
	var n model.Note
	err := r.db.WithContext(ctx).First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepo) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Model(&model.Note{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		now := time.Now()
		n.ID = maxID + 1
		n.CreatedAt = now
		n.UpdatedAt = now
		return tx.Create(n).Error
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *noteRepo) Update(ctx context.Context, id int64, updates map[string]any) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := marshalColumn(updates, "tags"); err != nil {
		return nil, err
	}
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *noteRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.db.WithContext(ctx).Delete(&model.Note{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Search фильтрует в памяти: теги лежат сериализованным JSON,
// и LIKE по этой колонке вёл бы себя по-разному в SQLite и Postgres.
func (r *noteRepo) Search(ctx context.Context, query string) ([]model.Note, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]model.Note, 0)
	for _, n := range all {
		if noteMatches(&n, q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func noteMatches(n *model.Note, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(n.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), lowerQuery) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

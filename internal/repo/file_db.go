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

type fileRepo struct {
	db *gorm.DB
	// сериализует циклы read-modify-write, чтобы параллельные Create
	// не получили одинаковый id
	mu sync.Mutex
}

// NewFileRepository создаёт durable-реализацию репозитория файлов поверх GORM.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) List(ctx context.Context, parentID *int64) ([]model.File, error) {
	var files []model.File
	q := r.db.WithContext(ctx).Order("id")
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if err := q.Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepo) ListAll(ctx context.Context) ([]model.File, error) {
	var files []model.File
	if err := r.db.WithContext(ctx).Order("id").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepo) Get(ctx context.Context, id int64) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) Create(ctx context.Context, f *model.File) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Model(&model.File{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		now := time.Now()
		f.ID = maxID + 1
		f.UploadDate = now
		f.LastModified = now
		return tx.Create(f).Error
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fileRepo) Update(ctx context.Context, id int64, updates map[string]any) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := marshalColumn(updates, "metadata"); err != nil {
		return nil, err
	}
	updates["last_modified"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.File{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *fileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.db.WithContext(ctx).Delete(&model.File{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *fileRepo) Search(ctx context.Context, query string) ([]model.File, error) {
	var files []model.File
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(original_name) LIKE ?", pattern, pattern).
		Order("id").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

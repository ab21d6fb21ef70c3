package repo

import (
	"FileNest/internal/model"
	"context"
	"errors"
)

// ErrNotFound возвращается, когда записи с указанным id не существует.
// Граничный слой отображает её в 404, в отличие от ошибок валидации.
var ErrNotFound = errors.New("record not found")

// FileRepository — контракт доступа к записям файлов/папок.
// Две реализации: durable (GORM) и in-memory; выбирается один раз при старте
// процесса и передаётся явно всем, кому нужна.
type FileRepository interface {
	// List возвращает детей папки parentID; nil означает корневой уровень.
	List(ctx context.Context, parentID *int64) ([]model.File, error)

	// ListAll возвращает все записи без фильтра (нужно реконсилеру и статистике).
	ListAll(ctx context.Context) ([]model.File, error)

	Get(ctx context.Context, id int64) (*model.File, error)

	// Create назначает id = max(существующих)+1 (или 1 для пустой коллекции),
	// ставит обе временные метки и сохраняет запись.
	Create(ctx context.Context, f *model.File) (*model.File, error)

	// Update применяет частичное обновление (ключи — имена колонок)
	// и всегда обновляет last_modified.
	Update(ctx context.Context, id int64, updates map[string]any) (*model.File, error)

	// Delete удаляет запись; false — если записи не было.
	Delete(ctx context.Context, id int64) (bool, error)

	// Search ищет подстроку без учёта регистра в name и original_name.
	Search(ctx context.Context, query string) ([]model.File, error)
}

// NoteRepository — контракт доступа к заметкам.
type NoteRepository interface {
	// List возвращает заметки: закреплённые сначала, затем по убыванию updated_at.
	List(ctx context.Context) ([]model.Note, error)

	Get(ctx context.Context, id int64) (*model.Note, error)
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*model.Note, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// Search ищет подстроку без учёта регистра в title, content и тегах.
	Search(ctx context.Context, query string) ([]model.Note, error)
}

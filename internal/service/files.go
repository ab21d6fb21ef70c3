package service

import (
	"FileNest/internal/blobstore"
	"FileNest/internal/model"
	"FileNest/internal/repo"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// FileService — менеджер иерархии: загрузка файлов, папки,
// каскадное удаление поддеревьев вместе с блобами на диске.
type FileService struct {
	files  repo.FileRepository
	blobs  *blobstore.DiskStore
	logger *zap.SugaredLogger
}

// NewFileService создаёт сервис файлов.
func NewFileService(files repo.FileRepository, blobs *blobstore.DiskStore, logger *zap.SugaredLogger) *FileService {
	return &FileService{files: files, blobs: blobs, logger: logger}
}

// Upload — один входящий блоб из multipart-запроса.
type Upload struct {
	OriginalName string
	MimeType     string
	Size         int64
	Data         io.Reader
}

// List возвращает детей папки parentID (nil — корень).
func (s *FileService) List(ctx context.Context, parentID *int64) ([]model.File, error) {
	return s.files.List(ctx, parentID)
}

// Get возвращает запись по id.
func (s *FileService) Get(ctx context.Context, id int64) (*model.File, error) {
	return s.files.Get(ctx, id)
}

// Search ищет по имени без учёта регистра.
func (s *FileService) Search(ctx context.Context, query string) ([]model.File, error) {
	return s.files.Search(ctx, query)
}

// CreateFolder создаёт виртуальную папку и её каталог на диске.
// parentID, если задан, должен указывать на существующую папку.
func (s *FileService) CreateFolder(ctx context.Context, name string, parentID *int64) (*model.File, error) {
	if name == "" {
		return nil, validationErrorf("folder name is required")
	}
	if err := s.checkParent(ctx, parentID); err != nil {
		return nil, err
	}

	folder := &model.File{
		Name:         name,
		OriginalName: name,
		Path:         "",
		Size:         0,
		MimeType:     model.FolderMimeType,
		IsFolder:     true,
		ParentID:     parentID,
	}
	folder, err := s.files.Create(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("create folder record: %w", err)
	}

	// каталог папки — носитель её «живости» для реконсилера
	if err := s.blobs.EnsureDir(folder.ID); err != nil {
		return nil, err
	}
	return folder, nil
}

// UploadFiles сохраняет блобы на диск и создаёт записи.
// Первая невосстановимая ошибка прерывает батч; уже созданные записи остаются.
func (s *FileService) UploadFiles(ctx context.Context, uploads []Upload, parentID *int64) ([]model.File, error) {
	if len(uploads) == 0 {
		return nil, validationErrorf("no files uploaded")
	}
	if err := s.checkParent(ctx, parentID); err != nil {
		return nil, err
	}

	saved := make([]model.File, 0, len(uploads))
	for _, u := range uploads {
		name, path, err := s.blobs.Save(parentID, u.OriginalName, u.Data)
		if err != nil {
			return saved, fmt.Errorf("save %q: %w", u.OriginalName, err)
		}

		f := &model.File{
			Name:         name,
			OriginalName: u.OriginalName,
			Path:         path,
			Size:         u.Size,
			MimeType:     u.MimeType,
			IsFolder:     false,
			ParentID:     parentID,
			Metadata:     stubMetadata(u.MimeType),
		}
		f, err = s.files.Create(ctx, f)
		if err != nil {
			// запись не создана — блоб на диске осиротел, убираем сразу
			_ = s.blobs.Remove(path)
			return saved, fmt.Errorf("create record for %q: %w", u.OriginalName, err)
		}
		saved = append(saved, *f)
	}
	return saved, nil
}

// stubMetadata — заглушка извлечения метаданных: для PDF создаём пустой каркас.
func stubMetadata(mimeType string) map[string]any {
	if mimeType != "application/pdf" {
		return nil
	}
	return map[string]any{
		"pages":     nil,
		"title":     nil,
		"author":    nil,
		"wordCount": nil,
	}
}

// UpdateFileRequest — частичное обновление записи файла.
type UpdateFileRequest struct {
	OriginalName *string         `json:"originalName,omitempty"`
	ParentID     *int64          `json:"parentId,omitempty"`
	MoveToRoot   bool            `json:"moveToRoot,omitempty"`
	Metadata     *map[string]any `json:"metadata,omitempty"`
}

// Update применяет частичное обновление (rename/move/metadata).
func (s *FileService) Update(ctx context.Context, id int64, req UpdateFileRequest) (*model.File, error) {
	updates := map[string]any{}
	if req.OriginalName != nil {
		if *req.OriginalName == "" {
			return nil, validationErrorf("originalName must not be empty")
		}
		updates["original_name"] = *req.OriginalName
	}
	if req.ParentID != nil {
		if err := s.checkParent(ctx, req.ParentID); err != nil {
			return nil, err
		}
		if err := s.checkNoCycle(ctx, id, *req.ParentID); err != nil {
			return nil, err
		}
		updates["parent_id"] = req.ParentID
	} else if req.MoveToRoot {
		updates["parent_id"] = (*int64)(nil)
	}
	if req.Metadata != nil {
		updates["metadata"] = *req.Metadata
	}
	if len(updates) == 0 {
		return nil, validationErrorf("no fields to update")
	}
	return s.files.Update(ctx, id, updates)
}

// Delete удаляет запись; для папки — всё поддерево вместе с блобами
// и каталогами. false — если записи не было.
func (s *FileService) Delete(ctx context.Context, id int64) (bool, error) {
	target, err := s.files.Get(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !target.IsFolder {
		// отсутствующий блоб не ошибка: удаление идемпотентно
		if err := s.blobs.Remove(target.Path); err != nil {
			return false, err
		}
		return s.files.Delete(ctx, id)
	}

	// снимок всей коллекции, чтобы обход не зависел от мутаций по ходу
	all, err := s.files.ListAll(ctx)
	if err != nil {
		return false, err
	}
	descendants := collectDescendants(all, id)

	for _, d := range descendants {
		if d.IsFolder {
			if err := s.blobs.RemoveDir(d.ID); err != nil {
				return false, err
			}
			continue
		}
		if err := s.blobs.Remove(d.Path); err != nil {
			return false, err
		}
	}
	if err := s.blobs.RemoveDir(id); err != nil {
		return false, err
	}

	for _, d := range descendants {
		if _, err := s.files.Delete(ctx, d.ID); err != nil {
			return false, err
		}
	}
	removed, err := s.files.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	s.logger.Infow("deleted folder subtree", "id", id, "descendants", len(descendants))
	return removed, nil
}

// checkNoCycle запрещает перенос записи в саму себя или в её поддерево:
// цикл по parent_id сделал бы потомков недостижимыми из корня.
func (s *FileService) checkNoCycle(ctx context.Context, id, newParentID int64) error {
	if newParentID == id {
		return validationErrorf("cannot move entry %d into itself", id)
	}
	target, err := s.files.Get(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		// записи нет — пусть Update вернёт ErrNotFound сам
		return nil
	}
	if err != nil {
		return err
	}
	if !target.IsFolder {
		return nil
	}
	all, err := s.files.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, d := range collectDescendants(all, id) {
		if d.ID == newParentID {
			return validationErrorf("cannot move folder %d into its own subtree", id)
		}
	}
	return nil
}

// collectDescendants строит замыкание потомков rootID по цепочкам ParentID.
// Уже посещённые узлы пропускаются: обход заканчивается даже на
// повреждённых данных с циклом.
func collectDescendants(all []model.File, rootID int64) []model.File {
	children := make(map[int64][]model.File, len(all))
	for _, f := range all {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f)
		}
	}

	var out []model.File
	seen := map[int64]bool{rootID: true}
	queue := []int64{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ch := range children[cur] {
			if seen[ch.ID] {
				continue
			}
			seen[ch.ID] = true
			out = append(out, ch)
			if ch.IsFolder {
				queue = append(queue, ch.ID)
			}
		}
	}
	return out
}

// checkParent валидирует ссылку на родителя: существует и является папкой.
func (s *FileService) checkParent(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.files.Get(ctx, *parentID)
	if errors.Is(err, repo.ErrNotFound) {
		return validationErrorf("parent folder %d does not exist", *parentID)
	}
	if err != nil {
		return err
	}
	if !parent.IsFolder {
		return validationErrorf("parent %d is not a folder", *parentID)
	}
	return nil
}

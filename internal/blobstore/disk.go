package blobstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DiskStore — файловое хранилище загруженных блобов.
// Корневые файлы лежат прямо в root, дети папки N — в подкаталоге "N".
// Папка жива, пока существует её каталог; он создаётся вместе с записью.
type DiskStore struct {
	root string
}

// NewDiskStore создаёт хранилище и гарантирует наличие корневого каталога.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("blobstore: empty root dir")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blobstore: create root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root возвращает корневой каталог хранилища.
func (s *DiskStore) Root() string { return s.root }

// GenerateName выдаёт устойчивое к коллизиям имя: unix-миллисекунды,
// случайный суффикс и исходное расширение.
func GenerateName(originalName string) string {
	suffix := uuid.NewString()[:8]
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix + filepath.Ext(originalName)
}

// Save кладёт содержимое r на диск под сгенерированным именем.
// parentID != nil направляет блоб в подкаталог папки-родителя.
// Возвращает имя на диске и абсолютный путь.
func (s *DiskStore) Save(parentID *int64, originalName string, r io.Reader) (name, path string, err error) {
	dir := s.root
	if parentID != nil {
		dir = filepath.Join(s.root, strconv.FormatInt(*parentID, 10))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("blobstore: create parent dir: %w", err)
		}
	}

	name = GenerateName(originalName)
	path, err = filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", "", err
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("blobstore: create blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		// не оставляем половинчатый блоб
		_ = os.Remove(path)
		return "", "", fmt.Errorf("blobstore: write blob: %w", err)
	}
	return name, path, nil
}

// Exists сообщает, есть ли блоб по указанному пути.
func (s *DiskStore) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Remove удаляет блоб; отсутствие файла не ошибка.
func (s *DiskStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blobstore: remove blob: %w", err)
	}
	return nil
}

// EnsureDir создаёт каталог папки с именем id.
func (s *DiskStore) EnsureDir(id int64) error {
	if err := os.MkdirAll(s.DirPath(id), 0o755); err != nil {
		return fmt.Errorf("blobstore: create folder dir: %w", err)
	}
	return nil
}

// DirExists сообщает, существует ли каталог папки id.
func (s *DiskStore) DirExists(id int64) bool {
	info, err := os.Stat(s.DirPath(id))
	return err == nil && info.IsDir()
}

// RemoveDir рекурсивно удаляет каталог папки; идемпотентна.
func (s *DiskStore) RemoveDir(id int64) error {
	if err := os.RemoveAll(s.DirPath(id)); err != nil {
		return fmt.Errorf("blobstore: remove folder dir: %w", err)
	}
	return nil
}

// DirPath возвращает путь каталога папки id.
func (s *DiskStore) DirPath(id int64) string {
	return filepath.Join(s.root, strconv.FormatInt(id, 10))
}

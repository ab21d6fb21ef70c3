package model

import "time"

// FolderMimeType — сентинел-значение mimeType для папок.
// Папки виртуальные: физически существует только каталог с именем id.
const FolderMimeType = "application/folder"

// File — запись о загруженном файле или папке.
type File struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// Name — сгенерированное имя на диске (уникальное в пределах каталога),
	// OriginalName — имя, которое дал пользователь, может повторяться.
	Name         string `gorm:"not null" json:"name"`
	OriginalName string `gorm:"not null" json:"originalName"`

	// Path — абсолютный путь к блобу на диске; для папок пустая строка.
	Path string `json:"path"`

	Size     int64  `gorm:"not null" json:"size"`
	MimeType string `gorm:"not null" json:"mimeType"`

	UploadDate   time.Time `gorm:"not null" json:"uploadDate"`
	LastModified time.Time `gorm:"not null" json:"lastModified"`

	IsFolder bool `gorm:"not null;default:false" json:"isFolder"`

	// ParentID — id родительской папки; nil означает корень.
	ParentID *int64 `gorm:"index" json:"parentId"`

	// Metadata — опциональные структурированные данные (страницы PDF, автор и т.п.).
	// Известные ключи: pages, title, author, wordCount. Извлечение пока заглушка.
	Metadata map[string]any `gorm:"serializer:json" json:"metadata"`
}

package model

import "time"

// Цвета заметок — фиксированная палитра для группировки в UI.
var NoteColors = []string{"default", "red", "blue", "green", "yellow", "purple"}

// MaxNoteTags — максимум тегов у одной заметки.
const MaxNoteTags = 8

// Note — заметка пользователя.
type Note struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"not null" json:"content"`

	Color    string `gorm:"not null;default:default" json:"color"`
	IsPinned bool   `gorm:"not null;default:false" json:"isPinned"`

	// Tags — нормализованные теги с префиксом "#", без дублей, не более MaxNoteTags.
	Tags []string `gorm:"serializer:json" json:"tags"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// ValidColor сообщает, входит ли цвет в палитру.
func ValidColor(c string) bool {
	for _, v := range NoteColors {
		if v == c {
			return true
		}
	}
	return false
}

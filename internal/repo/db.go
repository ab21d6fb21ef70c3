package repo

import (
	"FileNest/internal/model"
	"encoding/json"
	"strings"

	gormpg "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение и прогоняет автомиграции.
// postgres-DSN распознаётся по схеме/ключам, всё остальное считаем путём к SQLite
// (драйвер modernc — без CGO).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dial = gormpg.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.File{}, &model.Note{}); err != nil {
		return nil, err
	}
	return db, nil
}

// marshalColumn заранее сериализует значение колонки в JSON-строку:
// map-вариант Updates в GORM идёт мимо serializer:json, и без этого
// запись в сериализованную колонку падает на уровне драйвера.
func marshalColumn(updates map[string]any, col string) error {
	v, ok := updates[col]
	if !ok || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	updates[col] = string(raw)
	return nil
}

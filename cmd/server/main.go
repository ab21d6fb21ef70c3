package main

import (
	"FileNest/internal/blobstore"
	"FileNest/internal/config"
	"FileNest/internal/handlers"
	"FileNest/internal/middleware"
	"FileNest/internal/repo"
	"FileNest/internal/service"
	"context"
	"net/http"
	"os"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		sugar.Fatalw("failed to create data dir", "dir", cfg.DataDir, "error", err)
	}

	// выбор хранилища: durable (GORM) или in-memory; дальше все компоненты
	// получают репозитории явно
	var fileRepo repo.FileRepository
	var noteRepo repo.NoteRepository
	if cfg.StorageMode == "memory" {
		fileRepo = repo.NewFileMemRepository()
		noteRepo = repo.NewNoteMemRepository()
	} else {
		gormDB, err := repo.InitDB(cfg.DatabaseDSN)
		if err != nil {
			sugar.Fatalw("failed to initialize database", "error", err)
		}
		fileRepo = repo.NewFileRepository(gormDB)
		noteRepo = repo.NewNoteRepository(gormDB)
	}

	blobs, err := blobstore.NewDiskStore(cfg.UploadDir)
	if err != nil {
		sugar.Fatalw("failed to initialize blob store", "error", err)
	}

	fileService := service.NewFileService(fileRepo, blobs, sugar)
	noteService := service.NewNoteService(noteRepo, sugar)
	quota := service.NewQuotaEstimator(cfg.UploadDir, sugar)
	statsService := service.NewStatsService(fileRepo, noteRepo, quota)

	// фоновая сверка записей с диском: при старте и далее по таймеру
	reconciler := service.NewReconciler(fileRepo, blobs, fileService, cfg.ReconcileInterval, sugar)
	reconciler.Start(ctx)

	h := handlers.NewHandler(fileService, noteService, statsService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"StorageMode", cfg.StorageMode,
		"UploadDir", cfg.UploadDir,
		"ReconcileInterval", cfg.ReconcileInterval,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

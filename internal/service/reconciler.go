package service

import (
	"FileNest/internal/blobstore"
	"FileNest/internal/repo"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reconciler устраняет дрейф между коллекцией записей и диском:
// записи без блоба и папки без каталога удаляются каскадом.
// Фоновая коррекция — ошибки наружу не отдаются, только логи.
type Reconciler struct {
	files    repo.FileRepository
	blobs    *blobstore.DiskStore
	svc      *FileService
	interval time.Duration
	logger   *zap.SugaredLogger

	// не допускаем двух проходов одновременно; тик во время прохода пропускается
	mu sync.Mutex
}

// NewReconciler создаёт реконсилер с указанным периодом.
func NewReconciler(files repo.FileRepository, blobs *blobstore.DiskStore, svc *FileService, interval time.Duration, logger *zap.SugaredLogger) *Reconciler {
	return &Reconciler{files: files, blobs: blobs, svc: svc, interval: interval, logger: logger}
}

// Start запускает фоновый цикл: проход сразу и далее по тикеру,
// до отмены контекста.
func (rc *Reconciler) Start(ctx context.Context) {
	go func() {
		rc.RunOnce(ctx)

		t := time.NewTicker(rc.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				rc.tryRun(ctx)
			}
		}
	}()
}

// tryRun запускает проход, только если предыдущий уже закончился.
func (rc *Reconciler) tryRun(ctx context.Context) {
	if !rc.mu.TryLock() {
		rc.logger.Debugw("reconciler: previous pass still running, skipping tick")
		return
	}
	defer rc.mu.Unlock()
	rc.pass(ctx)
}

// RunOnce выполняет один проход и возвращает число удалённых сирот.
// Идемпотентен: повторный проход без изменений на диске ничего не удаляет.
func (rc *Reconciler) RunOnce(ctx context.Context) int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.pass(ctx)
}

func (rc *Reconciler) pass(ctx context.Context) int {
	all, err := rc.files.ListAll(ctx)
	if err != nil {
		rc.logger.Errorw("reconciler: list failed, skipping pass", "error", err)
		return 0
	}

	removed := 0
	for _, f := range all {
		// Правило живости папки — существование её каталога на диске.
		// Альтернатива «ноль детей» отвергнута: уничтожала бы только что
		// созданные пустые папки.
		if f.IsFolder {
			if rc.blobs.DirExists(f.ID) {
				continue
			}
		} else if rc.blobs.Exists(f.Path) {
			continue
		}

		// каскад через FileService: потомки и их блобы уходят вместе с папкой
		ok, err := rc.svc.Delete(ctx, f.ID)
		if err != nil {
			rc.logger.Errorw("reconciler: failed to remove orphan", "id", f.ID, "error", err)
			continue
		}
		if ok {
			removed++
			rc.logger.Infow("reconciler: removed orphan",
				"id", f.ID, "name", f.OriginalName, "isFolder", f.IsFolder)
		}
	}

	if removed > 0 {
		rc.logger.Infow("reconciler: pass finished", "removed", removed)
	}
	return removed
}

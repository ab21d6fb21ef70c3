package handlers_test

import (
	"FileNest/internal/blobstore"
	"FileNest/internal/config"
	"FileNest/internal/handlers"
	"FileNest/internal/repo"
	"FileNest/internal/service"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// квота-заглушка, чтобы не зависеть от statfs в тестах хендлеров
type stubQuota struct{}

func (stubQuota) Total() int64 { return 1 << 30 }

// newTestHandler собирает полный роутер на in-memory репозиториях
// и блоб-хранилище во временном каталоге
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	blobs, err := blobstore.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	fileRepo := repo.NewFileMemRepository()
	noteRepo := repo.NewNoteMemRepository()
	sugar := zap.NewNop().Sugar()

	fileService := service.NewFileService(fileRepo, blobs, sugar)
	noteService := service.NewNoteService(noteRepo, sugar)
	statsService := service.NewStatsService(fileRepo, noteRepo, stubQuota{})

	cfg := &config.Config{MaxUploadSize: 200 << 20}
	h := handlers.NewHandler(fileService, noteService, statsService, sugar, cfg)
	return h.Router
}

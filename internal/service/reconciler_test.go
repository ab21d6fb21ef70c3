package service

import (
	"FileNest/internal/blobstore"
	"FileNest/internal/repo"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReconciler(t *testing.T) (*Reconciler, *FileService, repo.FileRepository, *blobstore.DiskStore) {
	t.Helper()
	blobs, err := blobstore.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	files := repo.NewFileMemRepository()
	svc := NewFileService(files, blobs, zap.NewNop().Sugar())
	rc := NewReconciler(files, blobs, svc, time.Minute, zap.NewNop().Sugar())
	return rc, svc, files, blobs
}

func TestReconciler_RemovesFileWithoutBlob(t *testing.T) {
	rc, svc, files, _ := newReconciler(t)
	ctx := context.Background()

	saved, err := svc.UploadFiles(ctx, []Upload{
		{OriginalName: "keep.txt", MimeType: "text/plain", Size: 1, Data: strings.NewReader("x")},
		{OriginalName: "gone.txt", MimeType: "text/plain", Size: 1, Data: strings.NewReader("y")},
	}, nil)
	require.NoError(t, err)

	// второй блоб пропадает с диска
	require.NoError(t, os.Remove(saved[1].Path))

	removed := rc.RunOnce(ctx)
	assert.Equal(t, 1, removed)

	all, err := files.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep.txt", all[0].OriginalName)
}

func TestReconciler_EmptyFolderWithDirSurvives(t *testing.T) {
	rc, svc, files, _ := newReconciler(t)
	ctx := context.Background()

	// правило живости — каталог на диске: пустая, но только что созданная
	// папка не должна удаляться
	_, err := svc.CreateFolder(ctx, "empty", nil)
	require.NoError(t, err)

	removed := rc.RunOnce(ctx)
	assert.Zero(t, removed)

	all, err := files.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReconciler_FolderWithoutDirCascades(t *testing.T) {
	rc, svc, files, blobs := newReconciler(t)
	ctx := context.Background()

	f, err := svc.CreateFolder(ctx, "F", nil)
	require.NoError(t, err)
	saved, err := svc.UploadFiles(ctx, []Upload{{OriginalName: "x.txt", MimeType: "text/plain", Size: 1, Data: strings.NewReader("x")}}, &f.ID)
	require.NoError(t, err)

	// каталог папки снесли извне — вместе с ним пропал и блоб ребёнка
	require.NoError(t, os.RemoveAll(blobs.DirPath(f.ID)))

	rc.RunOnce(ctx)

	all, err := files.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.False(t, blobs.Exists(saved[0].Path))
}

func TestReconciler_Idempotent(t *testing.T) {
	rc, svc, _, _ := newReconciler(t)
	ctx := context.Background()

	saved, err := svc.UploadFiles(ctx, []Upload{
		{OriginalName: "a.txt", MimeType: "text/plain", Size: 1, Data: strings.NewReader("x")},
		{OriginalName: "b.txt", MimeType: "text/plain", Size: 1, Data: strings.NewReader("y")},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, os.Remove(saved[0].Path))

	first := rc.RunOnce(ctx)
	assert.Equal(t, 1, first)

	// без изменений на диске второй проход ничего не удаляет
	second := rc.RunOnce(ctx)
	assert.Zero(t, second)
}

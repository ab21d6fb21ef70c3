package service

import (
	"FileNest/internal/model"
	"FileNest/internal/repo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// фиксированная квота вместо statfs
type fixedQuota struct{ total int64 }

func (q fixedQuota) Total() int64 { return q.total }

func newStatsService(quota int64) (*StatsService, repo.FileRepository, repo.NoteRepository) {
	files := repo.NewFileMemRepository()
	notes := repo.NewNoteMemRepository()
	return NewStatsService(files, notes, fixedQuota{total: quota}), files, notes
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		0:                      "0 B",
		512:                    "512 B",
		1024:                   "1 KB",
		1536:                   "1.5 KB",
		1024 * 1024:            "1 MB",
		5*1024*1024 + 256*1024: "5.3 MB",
		3 * 1024 * 1024 * 1024: "3 GB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBytes(in), "input %d", in)
	}
}

func TestStats_Dashboard(t *testing.T) {
	svc, files, notes := newStatsService(100 * 1024)
	ctx := context.Background()

	_, err := files.Create(ctx, &model.File{Name: "a", OriginalName: "a", MimeType: "text/plain", Size: 50 * 1024})
	require.NoError(t, err)
	_, err = notes.Create(ctx, &model.Note{Title: "n", Content: "c"})
	require.NoError(t, err)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalFiles)
	assert.Equal(t, 1, stats.TotalNotes)
	assert.Equal(t, "50 KB", stats.StorageUsed)
	// файл только что загружен — попадает в недельное окно
	assert.Equal(t, 1, stats.WeeklyUploads)
	assert.Equal(t, int64(50*1024), stats.StorageUsage.Used)
	assert.Equal(t, int64(100*1024), stats.StorageUsage.Total)
	assert.Equal(t, 50, stats.StorageUsage.Percentage)
}

func TestStats_DashboardOverQuotaNotClamped(t *testing.T) {
	svc, files, _ := newStatsService(1024)
	ctx := context.Background()

	_, err := files.Create(ctx, &model.File{Name: "big", OriginalName: "big", MimeType: "text/plain", Size: 2048})
	require.NoError(t, err)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	// процент не ограничен сверху — переполнение квоты видно как есть
	assert.Equal(t, 200, stats.StorageUsage.Percentage)
}

func TestStats_FileTypesConsistency(t *testing.T) {
	svc, files, _ := newStatsService(1 << 30)
	ctx := context.Background()

	add := func(mime string, folder bool) {
		_, err := files.Create(ctx, &model.File{Name: "f", OriginalName: "f", MimeType: mime, IsFolder: folder})
		require.NoError(t, err)
	}
	add("image/png", false)
	add("image/jpeg", false)
	add("application/pdf", false)
	add("video/mp4", false)
	add("text/plain", false)
	add("application/octet-stream", false)
	add(model.FolderMimeType, true) // папка не учитывается

	stats, err := svc.FileTypes(ctx)
	require.NoError(t, err)

	totalCount := 0
	totalPct := 0
	seen := map[string]bool{}
	for _, st := range stats {
		totalCount += st.Count
		totalPct += st.Percentage
		assert.False(t, seen[st.Type], "duplicate category %s", st.Type)
		seen[st.Type] = true
		assert.NotEmpty(t, st.Color)
	}
	// сумма счётчиков — ровно число файлов (без папок)
	assert.Equal(t, 6, totalCount)
	// сумма процентов в пределах погрешности округления
	assert.InDelta(t, 100, totalPct, 3)

	assert.True(t, seen["Images"])
	assert.True(t, seen["PDFs"])
	assert.True(t, seen["Videos"])
	assert.True(t, seen["Documents"])
	assert.True(t, seen["Other"])
}

func TestStats_RecentOrderAndLimit(t *testing.T) {
	svc, files, _ := newStatsService(1 << 30)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := files.Create(ctx, &model.File{Name: name, OriginalName: name, MimeType: "text/plain", Size: 10})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Name)
	assert.Equal(t, "second", recent[1].Name)
	assert.Equal(t, "10 B", recent[0].Size)
	assert.NotEmpty(t, recent[0].UploadTime)
}

func TestStats_LargestSkipsFolders(t *testing.T) {
	svc, files, _ := newStatsService(1 << 30)
	ctx := context.Background()

	_, err := files.Create(ctx, &model.File{Name: "small", OriginalName: "small", MimeType: "text/plain", Size: 1})
	require.NoError(t, err)
	_, err = files.Create(ctx, &model.File{Name: "big", OriginalName: "big", MimeType: "text/plain", Size: 100})
	require.NoError(t, err)
	_, err = files.Create(ctx, &model.File{Name: "dir", OriginalName: "dir", MimeType: model.FolderMimeType, IsFolder: true})
	require.NoError(t, err)

	largest, err := svc.Largest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, largest, 2)
	assert.Equal(t, "big", largest[0].Name)
	assert.Equal(t, "small", largest[1].Name)
}

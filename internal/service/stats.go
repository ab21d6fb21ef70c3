package service

import (
	"FileNest/internal/model"
	"FileNest/internal/repo"
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// StatsService — read-only агрегаты для дашборда. Никогда не мутирует.
type StatsService struct {
	files repo.FileRepository
	notes repo.NoteRepository
	quota QuotaSource
}

// QuotaSource отдаёт бюджет хранилища (знаменатель процента использования).
type QuotaSource interface {
	Total() int64
}

// NewStatsService создаёт сервис статистики.
func NewStatsService(files repo.FileRepository, notes repo.NoteRepository, quota QuotaSource) *StatsService {
	return &StatsService{files: files, notes: notes, quota: quota}
}

// DashboardStats — сводка для главной страницы.
type DashboardStats struct {
	TotalFiles    int          `json:"totalFiles"`
	TotalNotes    int          `json:"totalNotes"`
	StorageUsed   string       `json:"storageUsed"`
	WeeklyUploads int          `json:"weeklyUploads"`
	StorageUsage  StorageUsage `json:"storageUsage"`
}

// StorageUsage — занятое место против квоты.
// Percentage не ограничен сверху: при переполнении квоты видно реальное значение.
type StorageUsage struct {
	Percentage int   `json:"percentage"`
	Used       int64 `json:"used"`
	Total      int64 `json:"total"`
}

// FileTypeStat — разбивка файлов по категориям MIME-типов.
type FileTypeStat struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

// RecentFile — элемент списка недавних загрузок.
type RecentFile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Size       string `json:"size"`
	UploadTime string `json:"uploadTime"`
	MimeType   string `json:"mimeType"`
}

// Dashboard считает сводные показатели по текущему состоянию коллекций.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	files, err := s.files.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, err
	}

	var used int64
	for _, f := range files {
		used += f.Size
	}

	// недельная граница включительно: ровно now-7d ещё попадает
	weekAgo := time.Now().AddDate(0, 0, -7)
	weekly := 0
	for _, f := range files {
		if !f.UploadDate.Before(weekAgo) {
			weekly++
		}
	}

	total := s.quota.Total()
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(used) / float64(total) * 100))
	}

	return &DashboardStats{
		TotalFiles:    len(files),
		TotalNotes:    len(notes),
		StorageUsed:   FormatBytes(used),
		WeeklyUploads: weekly,
		StorageUsage: StorageUsage{
			Percentage: percentage,
			Used:       used,
			Total:      total,
		},
	}, nil
}

// палитра цветов диаграммы; категория получает цвет по порядку обнаружения
var typeColors = []string{"#6366f1", "#f59e42", "#10b981", "#ef4444", "#eab308", "#3b82f6", "#a21caf"}

// FileTypes группирует файлы (без папок) по категории MIME-типа.
// Проценты считаются от числа файлов, не папок.
func (s *StatsService) FileTypes(ctx context.Context) ([]FileTypeStat, error) {
	files, err := s.files.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	var order []string
	totalFiles := 0
	for _, f := range files {
		if f.IsFolder {
			continue
		}
		totalFiles++
		cat := typeCategory(f.MimeType)
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}

	out := make([]FileTypeStat, 0, len(order))
	for i, cat := range order {
		count := counts[cat]
		out = append(out, FileTypeStat{
			Type:       cat,
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(totalFiles) * 100)),
			Color:      typeColors[i%len(typeColors)],
		})
	}
	return out, nil
}

func typeCategory(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "Images"
	case mimeType == "application/pdf":
		return "PDFs"
	case strings.HasPrefix(mimeType, "video/"):
		return "Videos"
	case strings.Contains(mimeType, "document") || strings.Contains(mimeType, "text"):
		return "Documents"
	default:
		return "Other"
	}
}

// Recent возвращает limit последних загрузок (без папок), новые первыми.
func (s *StatsService) Recent(ctx context.Context, limit int) ([]RecentFile, error) {
	if limit <= 0 {
		limit = 5
	}
	files, err := s.files.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	plain := filesOnly(files)
	sort.SliceStable(plain, func(i, j int) bool {
		return plain[i].UploadDate.After(plain[j].UploadDate)
	})
	if len(plain) > limit {
		plain = plain[:limit]
	}

	out := make([]RecentFile, 0, len(plain))
	for _, f := range plain {
		out = append(out, RecentFile{
			ID:         f.ID,
			Name:       f.OriginalName,
			Size:       FormatBytes(f.Size),
			UploadTime: f.UploadDate.Format("02 Jan 2006 15:04"),
			MimeType:   f.MimeType,
		})
	}
	return out, nil
}

// Largest возвращает limit самых больших файлов (без папок), полные записи.
func (s *StatsService) Largest(ctx context.Context, limit int) ([]model.File, error) {
	if limit <= 0 {
		limit = 10
	}
	files, err := s.files.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	plain := filesOnly(files)
	sort.SliceStable(plain, func(i, j int) bool {
		return plain[i].Size > plain[j].Size
	})
	if len(plain) > limit {
		plain = plain[:limit]
	}
	return plain, nil
}

func filesOnly(all []model.File) []model.File {
	out := make([]model.File, 0, len(all))
	for _, f := range all {
		if !f.IsFolder {
			out = append(out, f)
		}
	}
	return out
}

// FormatBytes форматирует размер в наибольшей подходящей единице:
// "0 B", "1 KB", "1.5 KB" (один знак после запятой, хвостовой ноль обрезается).
func FormatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*10) / 10
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}

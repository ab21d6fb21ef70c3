package service

import (
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Бюджет хранилища — доля свободного места на томе, а не весь диск:
// процент использования отражает реальный оставшийся запас.
const quotaPercent = 80

// fallbackCapacity — сентинел на случай недоступного statfs (100 GiB).
const fallbackCapacity = int64(100) * 1024 * 1024 * 1024

// QuotaEstimator считает бюджет хранилища по свободному месту
// на томе каталога загрузок.
type QuotaEstimator struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewQuotaEstimator создаёт оценщик квоты для каталога dir.
func NewQuotaEstimator(dir string, logger *zap.SugaredLogger) *QuotaEstimator {
	return &QuotaEstimator{dir: dir, logger: logger}
}

var _ QuotaSource = (*QuotaEstimator)(nil)

// Total возвращает бюджет в байтах. Никогда не возвращает ошибку:
// при сбое statfs логирует и берёт запасную константу.
func (q *QuotaEstimator) Total() int64 {
	var st unix.Statfs_t
	if err := unix.Statfs(q.dir, &st); err != nil {
		q.logger.Warnw("quota: statfs failed, falling back",
			"dir", q.dir, "fallback", fallbackCapacity, "error", err)
		return fallbackCapacity / 100 * quotaPercent
	}
	avail := int64(st.Bavail) * int64(st.Bsize)
	return avail / 100 * quotaPercent
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestQuotaEstimator_RealVolume(t *testing.T) {
	q := NewQuotaEstimator(t.TempDir(), zap.NewNop().Sugar())
	total := q.Total()
	// 80% свободного места: хоть сколько-то, но не отрицательное
	assert.GreaterOrEqual(t, total, int64(0))
}

func TestQuotaEstimator_FallbackOnBadDir(t *testing.T) {
	q := NewQuotaEstimator("/definitely/not/a/real/dir", zap.NewNop().Sugar())
	// сбой statfs — запасная константа, ошибки наружу нет
	assert.Equal(t, fallbackCapacity/100*quotaPercent, q.Total())
}

package dbmetrics

import (
	"context"
	"time"
)

// DefaultPoolStatsInterval период снятия статистики connection pool
const DefaultPoolStatsInterval = 15 * time.Second

// CollectPoolStats периодически публикует sql.DBStats в gauges до отмены контекста
func (d *DB) CollectPoolStats(ctx context.Context, interval time.Duration) {
	if d.metrics == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.publishPoolStats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.publishPoolStats()
		}
	}
}

func (d *DB) publishPoolStats() {
	stats := d.db.Stats()
	d.metrics.DBOpenConns.Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConns.Set(float64(stats.InUse))
	d.metrics.DBIdleConns.Set(float64(stats.Idle))
	d.metrics.DBWaitCount.Set(float64(stats.WaitCount))
}

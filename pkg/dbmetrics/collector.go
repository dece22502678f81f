package dbmetrics

import (
	"database/sql"
	"time"

	"github.com/nlukyanov/consultant-booking/pkg/metrics"
)

// defaultPoolStatsInterval период опроса статистики пула соединений
const defaultPoolStatsInterval = 15 * time.Second

// WrapWithDefault оборачивает соединение метриками и запускает фоновый сбор
// статистики пула, пока не закрыт stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, dbName)
	go wrapped.collectPoolStats(stopCh, defaultPoolStatsInterval)
	return wrapped
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBPoolOpenConns.WithLabelValues(d.dbName).Set(float64(stats.OpenConnections))
			d.metrics.DBPoolInUseConns.WithLabelValues(d.dbName).Set(float64(stats.InUse))
			d.metrics.DBPoolIdleConns.WithLabelValues(d.dbName).Set(float64(stats.Idle))
		}
	}
}

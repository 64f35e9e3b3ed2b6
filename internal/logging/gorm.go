package logging

import (
	"fmt"
	"log/slog"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration after which gorm reports a query as slow.
const SlowQueryThreshold = 200 * time.Millisecond

type gormWriter struct {
	logger *slog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.logger.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}

// NewGormLogger routes gorm warnings, errors and slow queries through logger.
// Missing rows are expected by the get-or-create paths, so they are not reported.
func NewGormLogger(logger *slog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{logger: logger}, gormlogger.Config{
		SlowThreshold:             SlowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

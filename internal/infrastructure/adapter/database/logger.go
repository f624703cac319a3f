package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger forwards gorm's output to the application logger
type GormLogger struct {
	coreLogger    core.Logger
	logLevel      gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger bridges gorm to coreLogger. SQL statements are only traced
// when the application logs at debug.
func NewGormLogger(coreLogger core.Logger, slowThreshold time.Duration) gormlogger.Interface {
	level := gormlogger.Warn
	if coreLogger.GetLevel() == core.LogLevelDebug {
		level = gormlogger.Info
	}
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}

	return &GormLogger{
		coreLogger:    coreLogger,
		logLevel:      level,
		slowThreshold: slowThreshold,
	}
}

// LogMode sets the log level for the logger
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.coreLogger.Info(fmt.Sprintf(msg, data...), map[string]any{"source": "gorm"})
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.coreLogger.Warn(fmt.Sprintf(msg, data...), map[string]any{"source": "gorm"})
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.coreLogger.Error(fmt.Sprintf(msg, data...), map[string]any{"source": "gorm"})
	}
}

// Trace logs SQL statements, slow queries and query errors
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]any{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
		"source":  "gorm",
	}
	if queryType := extractQueryType(sql); queryType != "" {
		fields["type"] = queryType
	}

	switch {
	// record-not-found is a normal answer for lookups
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.logLevel >= gormlogger.Error:
		fields["error"] = err.Error()
		l.coreLogger.Error("SQL error", fields)
	case elapsed > l.slowThreshold && l.logLevel >= gormlogger.Warn:
		l.coreLogger.Warn("Slow SQL query", fields)
	case l.logLevel >= gormlogger.Info:
		l.coreLogger.Debug("SQL query", fields)
	}
}

func extractQueryType(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))
	for _, kind := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sqlUpper, kind) {
			return kind
		}
	}
	return ""
}

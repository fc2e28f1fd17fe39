package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapGormLogger routes gorm's logger.Interface through the process-wide zap
// logger so store activity shows up in the same stream as everything else.
// ErrRecordNotFound is not logged as an error: lookups of absent tasks are an
// expected outcome, not a store failure.
type zapGormLogger struct {
	log     *zap.Logger
	level   logger.LogLevel
	showSQL bool
}

func newZapGormLogger(log *zap.Logger, level logger.LogLevel, showSQL bool) *zapGormLogger {
	return &zapGormLogger{log: log, level: level, showSQL: showSQL}
}

func (l *zapGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *zapGormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *zapGormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *zapGormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *zapGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error("store query failed", append(l.queryFields(sql, rows, elapsed), zap.Error(err))...)
	case elapsed > slowQueryThreshold:
		sql, rows := fc()
		l.log.Warn("slow store query", append(l.queryFields(sql, rows, elapsed), zap.Duration("threshold", slowQueryThreshold))...)
	case l.level >= logger.Info && l.showSQL:
		sql, rows := fc()
		l.log.Info("store query", l.queryFields(sql, rows, elapsed)...)
	}
}

func (l *zapGormLogger) queryFields(sql string, rows int64, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
}

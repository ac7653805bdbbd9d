package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, slow time.Duration) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, slow), logs
}

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("error is logged", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn, time.Second)
		l.Trace(ctx, time.Now(), sqlFn("INSERT", 0), errors.New("constraint"))
		assert.Equal(t, 1, logs.FilterMessage("SQL Error").Len())
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn, time.Second)
		l.Trace(ctx, time.Now(), sqlFn("SELECT", 0), gorm.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn, time.Millisecond)
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn("SELECT", 1), nil)
		assert.Equal(t, 1, logs.FilterMessage("Slow SQL").Len())
	})

	t.Run("fast query silent at warn", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn, time.Second)
		l.Trace(ctx, time.Now(), sqlFn("SELECT", 1), nil)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Silent, time.Millisecond)
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn("SELECT", 1), errors.New("x"))
		assert.Equal(t, 0, logs.Len())
	})
}

func TestGormLogger_LogModeClones(t *testing.T) {
	l, _ := newObservedGormLogger(gormlogger.Warn, 0)
	info := l.LogMode(gormlogger.Info).(*GormLogger)
	assert.Equal(t, gormlogger.Info, info.level)
	assert.Equal(t, gormlogger.Warn, l.level)
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Warn, GormLevel("info"))
}

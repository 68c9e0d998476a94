package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type namedPool struct {
	gorm.ConnPool
	name string
}

func TestRoundRobin_Resolve(t *testing.T) {
	pools := []gorm.ConnPool{namedPool{name: "a"}, namedPool{name: "b"}, namedPool{name: "c"}}
	policy := &roundRobin{}

	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, policy.Resolve(pools).(namedPool).name)
	}

	assert.Equal(t, []string{"a", "b", "c", "a", "b"}, got)
}

func TestGORMLogWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := &GORMLogWriter{logger: zap.New(core)}

	w.Printf("%s [%.3fms] %s", "SLOW SQL >= 200ms", 512.0, "SELECT 1")
	w.Printf("[%.3fms] %s", 0.4, "SELECT 1")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "Slow query", entries[0].Message)
		assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	}
}

func TestNewGORMLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	quiet := NewGORMLogger(zap.New(core), "warn", 0)
	quiet.Info(context.Background(), "connected")
	assert.Zero(t, logs.Len())

	verbose := NewGORMLogger(zap.New(core), "debug", 0)
	verbose.Info(context.Background(), "connected")
	assert.Equal(t, 1, logs.Len())
}

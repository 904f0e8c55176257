package logx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogx_WritesThroughObservedCore(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetDevelopment(false)

	Infof("loaded %d fields", 3)
	With(Fields{"job_id": "job-1"}).Warn("field ignored")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "loaded 3 fields", entries[0].Message)
		assert.Equal(t, "field ignored", entries[1].Message)
		assert.Equal(t, "job-1", entries[1].ContextMap()["job_id"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"":      LevelInfo,
		"bogus": LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

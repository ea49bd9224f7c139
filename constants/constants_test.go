package constants

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{"SCORE_PATH", "PORT", "METADATA_TABLE", "LOG_LEVEL", "AUTOSAVE_DELAY_MS"} {
		t.Setenv(key, "")
	}

	assert := assert.New(t)
	assert.Equal("./scores", GetScoreDir())
	assert.Equal("8080", GetPort())
	assert.Equal("reprise-metadata", GetMetadataTable())
	assert.Equal(slog.LevelInfo, GetLogLevel())
	assert.Equal(500*time.Millisecond, GetAutosaveDelay())
}

func TestOverrides(t *testing.T) {
	t.Setenv("SCORE_PATH", "/tmp/scores")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("AUTOSAVE_DELAY_MS", "20")

	assert := assert.New(t)
	assert.Equal("/tmp/scores", GetScoreDir())
	assert.Equal("9000", GetPort())
	assert.Equal(slog.LevelDebug, GetLogLevel())
	assert.Equal(20*time.Millisecond, GetAutosaveDelay())
}

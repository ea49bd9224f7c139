package constants

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

func GetScoreDir() string {
	path := os.Getenv("SCORE_PATH")
	if path != "" {
		return path
	}
	return "./scores"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// GetMidiOut names the output port to play through. Empty picks the first one.
func GetMidiOut() string {
	return os.Getenv("MIDI_OUT")
}

// GetMidiIn names the input port practice listens on. Empty picks the first one.
func GetMidiIn() string {
	return os.Getenv("MIDI_IN")
}

// GetMetadataEndpoint is the DynamoDB endpoint holding score metadata. Empty
// disables metadata lookups.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

func GetMetadataTable() string {
	table := os.Getenv("METADATA_TABLE")
	if table != "" {
		return table
	}
	return "reprise-metadata"
}

func GetMetadataRegion() string {
	region := os.Getenv("METADATA_REGION")
	if region != "" {
		return region
	}
	return "localhost"
}

func GetLogLevel() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// GetAutosaveDelay is how long edits must settle before a score is written.
func GetAutosaveDelay() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("AUTOSAVE_DELAY_MS"))
	if err != nil || ms <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

// MaxMetadataBatch is the most keys one DynamoDB lookup may ask for.
const MaxMetadataBatch = 10

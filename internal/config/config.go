package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the environment-driven runtime configuration. The OpenAI key is
// read directly by the model client from OPENAI_API_KEY.
type Config struct {
	Addr              string
	LogLevel          string
	PrettyLogs        bool
	OCREndpoint       string
	DetectorEndpoint  string
	PerceptionTimeout time.Duration
	PerceptionWorkers int64
	CacheTTL          time.Duration
	CacheEntries      int
	HistoryPath       string
}

func FromEnv() Config {
	return Config{
		Addr:              getString("DESKPILOT_ADDR", ":8080"),
		LogLevel:          getString("DESKPILOT_LOG_LEVEL", "info"),
		PrettyLogs:        getBool("DESKPILOT_PRETTY_LOGS", true),
		OCREndpoint:       getString("DESKPILOT_OCR_ENDPOINT", "http://127.0.0.1:8090/ocr"),
		DetectorEndpoint:  getString("DESKPILOT_DETECTOR_ENDPOINT", ""),
		PerceptionTimeout: getDuration("DESKPILOT_PERCEPTION_TIMEOUT", 10*time.Second),
		PerceptionWorkers: int64(getInt("DESKPILOT_PERCEPTION_WORKERS", 2)),
		CacheTTL:          getDuration("DESKPILOT_CACHE_TTL", 30*time.Second),
		CacheEntries:      getInt("DESKPILOT_CACHE_ENTRIES", 64),
		HistoryPath:       getString("DESKPILOT_HISTORY_PATH", "history/commands.jsonl"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

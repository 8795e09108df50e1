// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings from SFX_* environment variables.
package config

import (
	"math"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Audio
	SampleRate      int           // mix and preview rate
	SafetyTail      time.Duration // silence after the last mix layer
	PreviewChannels int

	// Decoding
	AssetRoot     string // directory that /sounds/... paths resolve under
	HTTPTimeout   time.Duration
	MaxAssetBytes int64
	DecodeWorkers int

	// Storage
	BlobDir   string
	StoreFile string

	LogFile string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		SampleRate:      envInt("SFX_SAMPLE_RATE", 44100),
		SafetyTail:      envSeconds("SFX_SAFETY_TAIL", 2.0),
		PreviewChannels: envInt("SFX_PREVIEW_CHANNELS", 2),

		AssetRoot:     envStr("SFX_ASSET_ROOT", "./public"),
		HTTPTimeout:   envSeconds("SFX_HTTP_TIMEOUT", 15),
		MaxAssetBytes: int64(envInt("SFX_MAX_ASSET_BYTES", 32<<20)),
		DecodeWorkers: envInt("SFX_DECODE_WORKERS", 4),

		BlobDir:   envStr("SFX_BLOB_DIR", "./data/blobs"),
		StoreFile: envStr("SFX_STORE_FILE", "./data/store.json"),

		LogFile: envStr("SFX_LOG_FILE", "sfxkit.log"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// envSeconds reads a possibly fractional number of seconds.
func envSeconds(key string, fallback float64) time.Duration {
	return time.Duration(math.Round(envFloat(key, fallback) * float64(time.Second)))
}

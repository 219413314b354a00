// Package config loads service configuration from environment variables,
// applying defaults and post-load validation. A .env file, when present, is
// loaded by the entry point before this package reads the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all server settings in their usable types.
type Config struct {
	Addr           string
	APIPrefix      string
	UploadDir      string
	OutputDir      string
	MaxUploadMB    int
	AllowedOrigins []string
	ModelSize      string
	WhisperBin     string
	Device         string
}

// Load reads configuration from the environment. It is the only way the
// rest of the service obtains config.
func Load() *Config {
	cfg := &Config{
		Addr:           getEnv("ADDR", ":8080"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		UploadDir:      getEnv("UPLOAD_DIR", "tmp/uploads"),
		OutputDir:      getEnv("OUTPUT_DIR", "tmp/transcripts"),
		MaxUploadMB:    getEnvAsInt("MAX_UPLOAD_MB", 200),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		ModelSize:      getEnv("MODEL_SIZE", "medium"),
		WhisperBin:     getEnv("WHISPER_BIN", "faster-whisper"),
		Device:         getEnv("WHISPER_DEVICE", "auto"),
	}

	validate(cfg)

	return cfg
}

// MaxUploadBytes converts the configured upload cap to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	str := getEnv(key, "")
	if val, err := strconv.Atoi(str); err == nil {
		return val
	}
	return fallback
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// validate normalizes values that would otherwise break routing or uploads.
func validate(cfg *Config) {
	if cfg.MaxUploadMB < 1 {
		log.Printf("config: MAX_UPLOAD_MB must be at least 1, resetting to 200")
		cfg.MaxUploadMB = 200
	}

	cfg.APIPrefix = strings.TrimRight(cfg.APIPrefix, "/")
	if cfg.APIPrefix != "" && !strings.HasPrefix(cfg.APIPrefix, "/") {
		cfg.APIPrefix = "/" + cfg.APIPrefix
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/AVN-Software/skern-tag-system/internal/detect"
	"github.com/AVN-Software/skern-tag-system/internal/render"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr string

	// Store selection: postgres is preferred when configured, then redis,
	// then the in-process store.
	PostgresURL string
	RedisURL    string

	// Audit publishing; empty brokers fall back to the log sink.
	KafkaBrokers []string
	AuditTopic   string

	Tag    render.TagSpec
	Detect detect.Config
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:         getenv("SKERN_ADDR", ":8080"),
		PostgresURL:  os.Getenv("SKERN_POSTGRES_URL"),
		RedisURL:     os.Getenv("SKERN_REDIS_URL"),
		AuditTopic:   getenv("SKERN_AUDIT_TOPIC", "skern.tag.events"),
		Tag:          render.DefaultSpec(),
		Detect:       detect.DefaultConfig(),
	}

	if brokers := os.Getenv("SKERN_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	cfg.Tag.Size = getint("SKERN_TAG_SIZE", cfg.Tag.Size)
	cfg.Tag.QRPercent = getint("SKERN_QR_PERCENT", cfg.Tag.QRPercent)
	cfg.Tag.VerifyBaseURL = getenv("SKERN_VERIFY_BASE_URL", cfg.Tag.VerifyBaseURL)
	cfg.Tag.FontPath = os.Getenv("SKERN_FONT_PATH")

	// Detector tunables are empirically calibrated; exposed for
	// recalibration against real capture hardware.
	cfg.Detect.GuillocheAreaRatio = getfloat("SKERN_GUILLOCHE_AREA_RATIO", cfg.Detect.GuillocheAreaRatio)
	cfg.Detect.GridMinSegments = getint("SKERN_GRID_MIN_SEGMENTS", cfg.Detect.GridMinSegments)
	cfg.Detect.CornerMinCount = getint("SKERN_CORNER_MIN_COUNT", cfg.Detect.CornerMinCount)
	cfg.Detect.CornerResponseRatio = getfloat("SKERN_CORNER_RESPONSE_RATIO", cfg.Detect.CornerResponseRatio)

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

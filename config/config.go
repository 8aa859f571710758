package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type (
	Config struct {
		HTTP    HTTP
		Log     Log
		PG      PG
		Upload  Upload
		Janitor Janitor
		Metrics Metrics
		Swagger Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
		BodyLimit      int    `env:"HTTP_BODY_LIMIT" envDefault:"8388608"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	// Upload is the single place where pipeline limits live.
	Upload struct {
		RootDir        string   `env:"UPLOAD_ROOT_DIR" envDefault:"./public/assets/uploads" validate:"required"`
		PublicPrefix   string   `env:"UPLOAD_PUBLIC_PREFIX" envDefault:"assets/uploads" validate:"required"`
		MaxSize        int64    `env:"UPLOAD_MAX_SIZE" envDefault:"5242880" validate:"gt=0"`
		MaxWidth       int      `env:"UPLOAD_MAX_WIDTH" envDefault:"1920" validate:"gt=0"`
		ThumbWidth     int      `env:"UPLOAD_THUMB_WIDTH" envDefault:"300" validate:"gt=0"`
		ThumbHeight    int      `env:"UPLOAD_THUMB_HEIGHT" envDefault:"300" validate:"gt=0"`
		JPEGQuality    int      `env:"UPLOAD_JPEG_QUALITY" envDefault:"85" validate:"min=1,max=100"`
		WebPQuality    int      `env:"UPLOAD_WEBP_QUALITY" envDefault:"85" validate:"min=1,max=100"`
		PNGCompression int      `env:"UPLOAD_PNG_COMPRESSION" envDefault:"8" validate:"min=0,max=9"`
		ImageTypes     []string `env:"UPLOAD_IMAGE_TYPES" envDefault:"image/jpeg,image/png,image/gif,image/webp" validate:"min=1,dive,required"`
		DocumentTypes  []string `env:"UPLOAD_DOCUMENT_TYPES" envDefault:"application/pdf" validate:"min=1,dive,required"`
	}

	// Janitor removes temp files left by interrupted image rewrites.
	Janitor struct {
		Enabled         bool          `env:"JANITOR_ENABLED" envDefault:"true"`
		Interval        time.Duration `env:"JANITOR_INTERVAL" envDefault:"10m"`
		StaleAfter      time.Duration `env:"JANITOR_STALE_AFTER" envDefault:"1h"`
		ShutdownTimeout time.Duration `env:"JANITOR_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Metrics struct {
		Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := validator.New().Struct(cfg.Upload); err != nil {
		return nil, fmt.Errorf("config error: upload: %w", err)
	}

	return cfg, nil
}

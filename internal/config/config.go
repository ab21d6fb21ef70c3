package config

import (
	"flag"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Storage settings
	DatabaseDSN string `env:"DATABASE_URI"`
	StorageMode string `env:"STORAGE_MODE"` // db | memory
	DataDir     string `env:"DATA_DIR"`
	UploadDir   string `env:"UPLOAD_DIR"`

	// Server settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Tunables
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL"`
	MaxUploadSize     int64         `env:"MAX_UPLOAD_SIZE"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к SQLite)")
	flag.StringVar(&cfg.StorageMode, "storage", cfg.StorageMode, "режим хранилища: db или memory")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "каталог данных приложения")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог загруженных блобов")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера в формате host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.DurationVar(&cfg.ReconcileInterval, "reconcile-interval", cfg.ReconcileInterval, "период фоновой сверки записей с диском")
	flag.Int64Var(&cfg.MaxUploadSize, "max-upload-size", cfg.MaxUploadSize, "максимальный размер одного файла в байтах")

	flag.Parse()

	// Defaults
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}

	if cfg.StorageMode != "memory" {
		cfg.StorageMode = "db"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = filepath.Join(cfg.DataDir, "uploads")
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = filepath.Join(cfg.DataDir, "filenest.db")
	}
	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = 30 * time.Second
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 200 << 20 // 200 MB
	}

	return cfg
}

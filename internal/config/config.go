package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port             int                  `json:"port"`
	LogConfig        logger.LogConfig     `json:"log_config"`
	Database         DatabaseConfig       `json:"database"`
	AI               AIConfig             `json:"ai"`
	FileStore        FileStoreConfig      `json:"file_store"`
	EmbeddingCache   EmbeddingCacheConfig `json:"embedding_cache"`
	Schedule         ScheduleConfig       `json:"schedule"`
	CORSAllowOrigins []string             `json:"cors_allow_origins"`
	MaxImageSize     int64                `json:"max_image_size"`
}

type DatabaseConfig struct {
	DSN          string `json:"dsn"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	Password     string `json:"password"`
	DBName       string `json:"dbname"`
	SSLMode      string `json:"sslmode"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// ProviderConfig selects a registered ai provider. Data is handed to the provider factory as is.
type ProviderConfig struct {
	Name     string                 `json:"name"`
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
	Data     map[string]interface{} `json:"data"`
}

type AIConfig struct {
	// Generators are tried in order until one answers.
	Generators []ProviderConfig `json:"generators"`
	Vision     ProviderConfig   `json:"vision"`
	Embedder   ProviderConfig   `json:"embedder"`
	Timeout    int              `json:"timeout"`
}

type FileStoreConfig struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type EmbeddingCacheConfig struct {
	LRUSize       int  `json:"lru_size"`
	LRUTTLSeconds int  `json:"lru_ttl_seconds"`
	DBEnabled     bool `json:"db_enabled"`
	MaxAgeDays    int  `json:"max_age_days"`
}

type ScheduleConfig struct {
	Enabled          bool   `json:"enabled"`
	StaleIndexSpec   string `json:"stale_index_spec"`
	StaleIndexBatch  int    `json:"stale_index_batch"`
	CacheCleanupSpec string `json:"cache_cleanup_spec"`
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadEnvFile loads a dotenv file into the process environment. Variables already set win.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads a JSON config file. ${VAR} references are replaced with environment values
// before decoding; unset variables become empty strings.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Config, error) {
	expanded := envRef.ReplaceAllFunc(raw, func(m []byte) []byte {
		name := string(envRef.FindSubmatch(m)[1])
		value, _ := json.Marshal(os.Getenv(name))
		// drop the surrounding quotes, the reference already sits inside a JSON string
		return value[1 : len(value)-1]
	})
	var cfg Config
	if err := json.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 60
	}
	for i, gen := range cfg.AI.Generators {
		if strings.TrimSpace(gen.Provider) == "" || strings.TrimSpace(gen.Model) == "" {
			return fmt.Errorf("ai.generators[%d] needs provider and model", i)
		}
	}
	if cfg.AI.Vision.Provider == "" {
		cfg.AI.Vision.Provider = "gemini"
	}
	if cfg.AI.Vision.Model == "" {
		cfg.AI.Vision.Model = "gemini-2.0-flash"
	}
	if cfg.AI.Embedder.Provider == "" {
		cfg.AI.Embedder.Provider = "local"
	}
	if cfg.AI.Embedder.Model == "" {
		cfg.AI.Embedder.Model = "default"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	switch cfg.FileStore.Type {
	case "local":
		if dir, _ := cfg.FileStore.Data["dir"].(string); dir == "" {
			return fmt.Errorf("file_store.data.dir is required for local store")
		}
	case "s3":
		if bucket, _ := cfg.FileStore.Data["bucket"].(string); bucket == "" {
			return fmt.Errorf("file_store.data.bucket is required for s3 store")
		}
	default:
		return fmt.Errorf("file_store.type must be local or s3")
	}
	if cfg.EmbeddingCache.LRUTTLSeconds == 0 {
		cfg.EmbeddingCache.LRUTTLSeconds = 3600
	}
	if cfg.EmbeddingCache.MaxAgeDays <= 0 {
		cfg.EmbeddingCache.MaxAgeDays = 30
	}
	if cfg.Schedule.StaleIndexSpec == "" {
		cfg.Schedule.StaleIndexSpec = "*/10 * * * *"
	}
	if cfg.Schedule.StaleIndexBatch <= 0 {
		cfg.Schedule.StaleIndexBatch = 20
	}
	if cfg.Schedule.CacheCleanupSpec == "" {
		cfg.Schedule.CacheCleanupSpec = "0 3 * * *"
	}
	if cfg.MaxImageSize <= 0 {
		cfg.MaxImageSize = 10 << 20
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Splitter selection for PipelineConfig.
const (
	SplitterWord  = "word"
	SplitterToken = "token"
)

// PipelineConfig bounds document processing and retrieval. Splitter
// selects how text is windowed: "word" (the default) or "token".
// ChunkOverlap may legitimately be zero, so it is a pointer; nil means
// the default.
type PipelineConfig struct {
	MaxFileSizeBytes int64  `yaml:"max_file_size_bytes"`
	MaxPages         int    `yaml:"max_pages"`
	Splitter         string `yaml:"splitter"`
	ChunkSizeWords   int    `yaml:"chunk_size_words"`
	ChunkOverlap     *int   `yaml:"chunk_overlap"`
	TopK             int    `yaml:"top_k"`
}

// ResilienceConfig bounds retries and per-attempt timeouts for
// network-bound operations. MaxRetries may legitimately be zero (no
// retries), so it is a pointer; nil means the default.
type ResilienceConfig struct {
	MaxRetries            *int `yaml:"max_retries"`
	BaseDelaySecs         int  `yaml:"base_delay_secs"`
	MaxDelaySecs          int  `yaml:"max_delay_secs"`
	ExtractionTimeoutSecs int  `yaml:"extraction_timeout_secs"`
	EmbeddingTimeoutSecs  int  `yaml:"embedding_timeout_secs"`
	GenerationTimeoutSecs int  `yaml:"generation_timeout_secs"`
}

// OpenAIConfig configures the OpenAI embedder and chat model.
type OpenAIConfig struct {
	APIKeyEnv      string `yaml:"api_key_env"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
}

// S3Config contains the bucket holding uploaded documents.
type S3Config struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
}

// PostgresConfig contains metadata database connection details.
type PostgresConfig struct {
	ConnStringEnv string `yaml:"conn_string_env"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Resilience ResilienceConfig `yaml:"resilience"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	S3         S3Config         `yaml:"s3"`
	Postgres   PostgresConfig   `yaml:"postgres"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if cfg.Pipeline.Splitter != SplitterWord && cfg.Pipeline.Splitter != SplitterToken {
		return nil, fmt.Errorf("unknown splitter %q, want %q or %q",
			cfg.Pipeline.Splitter, SplitterWord, SplitterToken)
	}
	return &cfg, nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Pipeline.MaxFileSizeBytes == 0 {
		cfg.Pipeline.MaxFileSizeBytes = 50 << 20
	}
	if cfg.Pipeline.MaxPages == 0 {
		cfg.Pipeline.MaxPages = 1000
	}
	if cfg.Pipeline.Splitter == "" {
		cfg.Pipeline.Splitter = SplitterWord
	}
	if cfg.Pipeline.ChunkSizeWords == 0 {
		cfg.Pipeline.ChunkSizeWords = 1000
	}
	if cfg.Pipeline.ChunkOverlap == nil {
		overlap := 200
		cfg.Pipeline.ChunkOverlap = &overlap
	}
	if cfg.Pipeline.TopK == 0 {
		cfg.Pipeline.TopK = 3
	}

	if cfg.Resilience.MaxRetries == nil {
		retries := 3
		cfg.Resilience.MaxRetries = &retries
	}
	if cfg.Resilience.BaseDelaySecs == 0 {
		cfg.Resilience.BaseDelaySecs = 1
	}
	if cfg.Resilience.MaxDelaySecs == 0 {
		cfg.Resilience.MaxDelaySecs = 60
	}
	if cfg.Resilience.ExtractionTimeoutSecs == 0 {
		cfg.Resilience.ExtractionTimeoutSecs = 300
	}
	if cfg.Resilience.EmbeddingTimeoutSecs == 0 {
		cfg.Resilience.EmbeddingTimeoutSecs = 60
	}
	if cfg.Resilience.GenerationTimeoutSecs == 0 {
		cfg.Resilience.GenerationTimeoutSecs = 60
	}

	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Postgres.ConnStringEnv == "" {
		cfg.Postgres.ConnStringEnv = "DATABASE_URL"
	}
}

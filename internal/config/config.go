package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is the service configuration, loaded from the environment.
type Config struct {
	Port   string `env:"PORT" envDefault:"8090"`
	APIKey string `env:"LAYOUTCHUNK_API_KEY"`

	// Remote document-analysis service. Optional: without it only local
	// file ingestion is available.
	AnalysisURL          string        `env:"ANALYSIS_URL"`
	AnalysisAPIKey       string        `env:"ANALYSIS_API_KEY"`
	AnalysisPollInterval time.Duration `env:"ANALYSIS_POLL_INTERVAL" envDefault:"5s"`

	// Embeddings for the vector store.
	OllamaURL        string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaEmbedModel string `env:"OLLAMA_EMBED_MODEL" envDefault:"nomic-embed-text"`

	// Storage paths. DataDir holds the vector store and search index.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// Worker pool.
	WorkerCount  int `env:"WORKER_COUNT" envDefault:"4"`
	MaxQueueSize int `env:"MAX_QUEUE_SIZE" envDefault:"100"`

	// Upload limits.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Job state.
	JobTTL time.Duration `env:"JOB_TTL" envDefault:"1h"`

	// Chunk reconstruction.
	ExpandMergedCells bool `env:"EXPAND_MERGED_CELLS" envDefault:"false"`

	// PDF
	PDFFallbackPdftotext bool `env:"PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LAYOUTCHUNK_API_KEY is required")
	}
	if c.AnalysisURL != "" && c.AnalysisAPIKey == "" {
		return fmt.Errorf("ANALYSIS_API_KEY is required when ANALYSIS_URL is set")
	}
	return nil
}

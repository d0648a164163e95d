package config

import (
	"time"

	"github.com/davetashner/topwords/internal/topword"
)

// Settings are the effective describe settings after defaults, config files
// and command-line flags have been applied.
type Settings struct {
	Model             string
	MaxContextLength  int
	Temperature       float64
	BasicInstruction  string
	CorpusInstruction string
	WordLimit         int // 0 means no cap
	BaseURL           string
	OutputFormat      string
	Timeout           time.Duration // set by --timeout only; 0 means none
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Model:            topword.DefaultModel,
		MaxContextLength: topword.DefaultMaxContextLength,
		Temperature:      topword.DefaultTemperature,
		BasicInstruction: topword.BasicInstruction,
		OutputFormat:     "text",
	}
}

// MergeFiles combines global and repo configs. Repo values take precedence;
// only non-zero repo values override global values.
func MergeFiles(global, repo *Config) *Config {
	merged := *global

	if repo.Model != "" {
		merged.Model = repo.Model
	}
	if repo.MaxContextLength != 0 {
		merged.MaxContextLength = repo.MaxContextLength
	}
	if repo.Temperature != nil {
		t := *repo.Temperature
		merged.Temperature = &t
	}
	if repo.BasicInstruction != "" {
		merged.BasicInstruction = repo.BasicInstruction
	}
	if repo.CorpusInstruction != "" {
		merged.CorpusInstruction = repo.CorpusInstruction
	}
	if repo.WordLimit != 0 {
		merged.WordLimit = repo.WordLimit
	}
	if repo.BaseURL != "" {
		merged.BaseURL = repo.BaseURL
	}
	if repo.OutputFormat != "" {
		merged.OutputFormat = repo.OutputFormat
	}

	return &merged
}

// Apply overlays the values set in cfg onto s.
func Apply(s Settings, cfg *Config) Settings {
	if cfg == nil {
		return s
	}
	if cfg.Model != "" {
		s.Model = cfg.Model
	}
	if cfg.MaxContextLength > 0 {
		s.MaxContextLength = cfg.MaxContextLength
	}
	if cfg.Temperature != nil {
		s.Temperature = *cfg.Temperature
	}
	if cfg.BasicInstruction != "" {
		s.BasicInstruction = cfg.BasicInstruction
	}
	if cfg.CorpusInstruction != "" {
		s.CorpusInstruction = cfg.CorpusInstruction
	}
	if cfg.WordLimit > 0 {
		s.WordLimit = cfg.WordLimit
	}
	if cfg.BaseURL != "" {
		s.BaseURL = cfg.BaseURL
	}
	if cfg.OutputFormat != "" {
		s.OutputFormat = cfg.OutputFormat
	}
	return s
}

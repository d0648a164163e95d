package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/davetashner/topwords/internal/output"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.MaxContextLength < 0 {
		errs = append(errs, fmt.Sprintf("max_context_length: must be non-negative, got %d", cfg.MaxContextLength))
	}

	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		errs = append(errs, fmt.Sprintf("temperature: must be between 0.0 and 2.0, got %g", *cfg.Temperature))
	}

	if cfg.WordLimit < 0 {
		errs = append(errs, fmt.Sprintf("word_limit: must be non-negative, got %d", cfg.WordLimit))
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("base_url: must be an absolute http(s) URL, got %q", cfg.BaseURL))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

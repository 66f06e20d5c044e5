package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	if c.Dictionary.Path == "" {
		return fmt.Errorf("dictionary.path is required")
	}
	if c.Dictionary.CacheSize < 0 {
		return fmt.Errorf("dictionary.cache_size must be >= 0 (got %d)", c.Dictionary.CacheSize)
	}
	if _, err := language.Parse(c.Tagger.Language); err != nil {
		return fmt.Errorf("tagger.language: %w", err)
	}
	if c.Checker.Workers <= 0 {
		return fmt.Errorf("checker.workers must be > 0 (got %d)", c.Checker.Workers)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	if err := c.Speller.validate(); err != nil {
		return fmt.Errorf("speller: %w", err)
	}
	return nil
}

func (s *SpellerConfig) validate() error {
	if s.Disabled {
		return nil
	}
	if s.MaxEditDistance < 0 || s.MaxEditDistance > 3 {
		return fmt.Errorf("max_edit_distance must be in [0,3] (got %d)", s.MaxEditDistance)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("top_k must be > 0 (got %d)", s.TopK)
	}
	if s.Weights.FreqTemperature <= 0 {
		return fmt.Errorf("weights.freq_temperature must be > 0 (got %v)", s.Weights.FreqTemperature)
	}
	return nil
}

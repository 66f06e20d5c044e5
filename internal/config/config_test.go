package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammarcheck/pkg/options"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
log:
  level: "debug"
  format: "text"

server:
  addr: ":9090"
  read_timeout: "5s"

redis:
  addr: "localhost:6379"
  db: 2

dictionary:
  path: "/data/br.tsv"
  cache_size: 500

tagger:
  language: "br"

speller:
  vocabulary_path: "/data/br.freq"
  top_k: 3
  layout: "fr"
  weights:
    transpose_cost: 0.5

checker:
  workers: 8
`

func TestLoad_ValidYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, t.TempDir(), validYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "default")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "custom_dict", cfg.Redis.Key)
	assert.Equal(t, "/data/br.tsv", cfg.Dictionary.Path)
	assert.Equal(t, 500, cfg.Dictionary.CacheSize)
	assert.Equal(t, "br", cfg.Tagger.Language)
	assert.Equal(t, "/data/br.freq", cfg.Speller.VocabularyPath)
	assert.Equal(t, 3, cfg.Speller.TopK)
	assert.Equal(t, 2, cfg.Speller.MaxEditDistance, "default")
	assert.InDelta(t, 0.5, cfg.Speller.Weights.TransposeCost, 1e-9)
	assert.InDelta(t, 2.0, cfg.Speller.Weights.FreqTemperature, 1e-9, "default")
	assert.Equal(t, 8, cfg.Checker.Workers)
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, t.TempDir(), validYAML))
	t.Setenv("HTTP_ADDR", ":3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SPELLER_TOP_K", "9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 9, cfg.Speller.TopK)
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DICTIONARY_PATH", "/srv/en.tsv")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/srv/en.tsv", cfg.Dictionary.Path)
	assert.Equal(t, "en", cfg.Tagger.Language)
	assert.False(t, cfg.Speller.Disabled)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 4, cfg.Checker.Workers)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	require.ErrorContains(t, err, "/nonexistent/config.yaml")
}

func TestLoad_InvalidYAMLValue(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, t.TempDir(), "checker:\n  workers: -2\n"))

	_, err := Load()
	require.ErrorContains(t, err, "checker.workers")
}

func validConfig() Config {
	cfg := Config{
		Log:        LogConfig{Level: "info", Format: "json"},
		Server:     ServerConfig{Addr: ":8080", MaxBodyBytes: 1 << 20},
		Dictionary: DictionaryConfig{Path: "dict.tsv", CacheSize: 10},
		Tagger:     TaggerConfig{Language: "en"},
		Speller:    SpellerConfig{MaxEditDistance: 2, TopK: 5},
		Checker:    CheckerConfig{Workers: 1},
	}
	cfg.Speller.Weights.FreqTemperature = 2
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "no dictionary", mutate: func(c *Config) { c.Dictionary.Path = "" }, wantErr: "dictionary.path"},
		{name: "negative cache", mutate: func(c *Config) { c.Dictionary.CacheSize = -1 }, wantErr: "cache_size"},
		{name: "bad language", mutate: func(c *Config) { c.Tagger.Language = "not a tag!" }, wantErr: "tagger.language"},
		{name: "edit distance", mutate: func(c *Config) { c.Speller.MaxEditDistance = 5 }, wantErr: "max_edit_distance"},
		{name: "top k", mutate: func(c *Config) { c.Speller.TopK = 0 }, wantErr: "top_k"},
		{name: "disabled speller skips checks", mutate: func(c *Config) {
			c.Speller.Disabled = true
			c.Speller.TopK = 0
		}},
		{name: "temperature", mutate: func(c *Config) { c.Speller.Weights.FreqTemperature = 0 }, wantErr: "freq_temperature"},
		{name: "body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: "max_body_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSpellerConfig_Options(t *testing.T) {
	s := SpellerConfig{MaxEditDistance: 1, PrefixLength: 4, CountThreshold: 10, TopK: 2, MinWordLength: 5, Layout: "ru"}

	got := options.Resolve(s.Options()...)
	assert.Equal(t, options.SuggestOptions{
		MaxDictionaryEditDistance: 1,
		PrefixLength:              4,
		CountThreshold:            10,
		TopK:                      2,
		MinWordLength:             5,
		PreserveCase:              true,
		Layout:                    "ru",
	}, got)
}

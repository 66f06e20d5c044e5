package config

import (
	"time"

	"grammarcheck/internal/corrector"
	"grammarcheck/pkg/options"
)

// Config is the root application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Tagger     TaggerConfig     `yaml:"tagger"`
	Speller    SpellerConfig    `yaml:"speller"`
	Checker    CheckerConfig    `yaml:"checker"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"HTTP_ADDR"               env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// RedisConfig holds the custom dictionary store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Key      string `yaml:"key"      env:"REDIS_KEY"      env-default:"custom_dict"`
}

// DictionaryConfig points at the sorted "form\tlemma\ttag" file.
type DictionaryConfig struct {
	Path      string `yaml:"path"       env:"DICTIONARY_PATH"       env-default:"dictionary.tsv"`
	CacheSize int    `yaml:"cache_size" env:"DICTIONARY_CACHE_SIZE" env-default:"10000"`
}

// TaggerConfig selects the language preset and message locale.
type TaggerConfig struct {
	Language string `yaml:"language" env:"TAGGER_LANGUAGE" env-default:"en"`
}

// SpellerConfig configures the spelling rule. Without a vocabulary file the
// vocabulary is built from the dictionary forms; without a layout the
// tagger language picks one.
type SpellerConfig struct {
	Disabled        bool   `yaml:"disabled"          env:"SPELLER_DISABLED"`
	VocabularyPath  string `yaml:"vocabulary_path"   env:"SPELLER_VOCABULARY_PATH"`
	MaxEditDistance int    `yaml:"max_edit_distance" env:"SPELLER_MAX_EDIT_DISTANCE" env-default:"2"`
	PrefixLength    int    `yaml:"prefix_length"     env:"SPELLER_PREFIX_LENGTH"     env-default:"7"`
	CountThreshold  int    `yaml:"count_threshold"   env:"SPELLER_COUNT_THRESHOLD"   env-default:"1"`
	TopK            int    `yaml:"top_k"             env:"SPELLER_TOP_K"             env-default:"5"`
	MinWordLength   int    `yaml:"min_word_length"   env:"SPELLER_MIN_WORD_LENGTH"   env-default:"3"`
	Layout          string `yaml:"layout"            env:"SPELLER_LAYOUT"`

	Weights corrector.Config `yaml:"weights"`
}

// Options converts the lookup settings to suggester options.
func (s SpellerConfig) Options() []options.Options {
	return []options.Options{
		options.WithMaxDictionaryEditDistance(s.MaxEditDistance),
		options.WithPrefixLength(s.PrefixLength),
		options.WithCountThreshold(s.CountThreshold),
		options.WithTopK(s.TopK),
		options.WithMinWordLength(s.MinWordLength),
		options.WithLayout(s.Layout),
	}
}

// CheckerConfig bounds parallel document checks.
type CheckerConfig struct {
	Workers int `yaml:"workers" env:"CHECKER_WORKERS" env-default:"4"`
}

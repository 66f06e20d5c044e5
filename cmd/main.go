package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"grammarcheck/internal/app"
	"grammarcheck/internal/config"
)

var (
	dictionaryPath string
	languageCode   string
)

var rootCmd = &cobra.Command{
	Use:           "grammarcheck",
	Short:         "dictionary-backed grammar and style checker",
	Long:          `grammarcheck tags text with a morphological dictionary and runs whitespace, pattern and spelling rules over it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dictionaryPath, "dictionary", "d", "", "sorted form\\tlemma\\ttag dictionary file (overrides DICTIONARY_PATH)")
	rootCmd.PersistentFlags().StringVarP(&languageCode, "language", "l", "", "language preset: en, br, gl, tr (overrides TAGGER_LANGUAGE)")
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dictionaryPath != "" {
		cfg.Dictionary.Path = dictionaryPath
	}
	if languageCode != "" {
		cfg.Tagger.Language = languageCode
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

func main() {
	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, errMatchesFound):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "grammarcheck:", err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"grammarcheck/internal/app"
	"grammarcheck/internal/checker"
)

var failOnMatch bool

var errMatchesFound = errors.New("matches found")

func init() {
	checkCmd.Flags().BoolVar(&failOnMatch, "fail-on-match", false, "exit with status 2 when any match is reported")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "check files, or stdin when none are given",
	Long:  `check prints one JSON report per input on stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return check(cmd, args)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "list the rules of the configured language",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		svc, closer, err := app.Open(cmd.Context(), cfg, logger)
		defer closer.Close()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(svc.Rules())
	},
}

type fileReport struct {
	File string `json:"file"`
	*checker.Report
}

func check(cmd *cobra.Command, args []string) error {
	names, docs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closer, err := app.Open(cmd.Context(), cfg, logger)
	defer closer.Close()
	if err != nil {
		return err
	}

	reports, err := svc.CheckAll(cmd.Context(), docs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	found := 0
	for i, r := range reports {
		found += len(r.Matches)
		if err := enc.Encode(fileReport{File: names[i], Report: r}); err != nil {
			return err
		}
	}
	if failOnMatch && found > 0 {
		return errMatchesFound
	}
	return nil
}

func readInputs(stdin io.Reader, args []string) ([]string, []string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{"-"}, []string{string(b)}, nil
	}
	docs := make([]string, len(args))
	for i, name := range args {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, nil, err
		}
		docs[i] = string(b)
	}
	return args, docs, nil
}

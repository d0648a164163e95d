// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/topwords/internal/llm"
	"github.com/davetashner/topwords/internal/output"
)

// Describe-specific flag values.
var (
	describeSettings settingsFlags
	describeFile     string
	describeOutput   string
	describeDryRun   bool
)

// describeCmd asks the chat model for the topic behind a list of top-words.
var describeCmd = &cobra.Command{
	Use:   "describe [words...]",
	Short: "Describe the topic behind a list of top-words",
	Long: `Describe the common topic of a list of topic-model top-words.

Words come from the arguments (comma-separated words are split) and/or a
word list file (.txt, .json, .yaml or .toml; "-" reads text from stdin).
Order matters: when the prompt does not fit --max-context-length, trailing
words are dropped.

Examples:
  topwords describe dog cat hamster
  topwords describe -f topic-3.txt --corpus-instruction "The corpus is pet forum posts."
  topwords describe -f topics.yaml -n 20 --format json -o topic.json
  topwords describe --dry-run dog,cat`,
	RunE: runDescribe,
}

func init() {
	describeSettings.register(describeCmd.Flags(), scopeRender)
	describeCmd.Flags().StringVarP(&describeFile, "file", "f", "", `word list file ("-" for stdin)`)
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "", "output file path (default: stdout)")
	describeCmd.Flags().BoolVar(&describeDryRun, "dry-run", false, "print the prepared prompt without calling the API")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	// 1. Resolve settings and input.
	s, err := loadSettings(cmd, &describeSettings)
	if err != nil {
		return err
	}
	formatter, err := output.GetFormatter(s.OutputFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "topwords: %v", err)
	}
	words, err := collectWords(cmd, describeFile, args)
	if err != nil {
		return exitError(ExitInvalidArgs, "topwords: %v", err)
	}

	// 2. Build the enhancer. A dry run never needs the key.
	apiKey := ""
	if !describeDryRun {
		apiKey = loadAPIKey()
		if apiKey == "" {
			return wrapExit(ExitInvalidArgs, errNoAPIKey, "topwords: %v", errNoAPIKey)
		}
	}
	e, err := newEnhancer(s, apiKey)
	if err != nil {
		return wrapExit(ExitInvalidArgs, err, "topwords: %v", err)
	}

	// 3. Prepare the prompt.
	p, err := e.Prepare(words, describeOptions(s)...)
	if err != nil {
		return wrapExit(ExitInvalidArgs, err, "topwords: %v", err)
	}
	tokens, err := e.CountTokens(p.Messages)
	if err != nil {
		return wrapExit(ExitInvalidArgs, err, "topwords: %v", err)
	}

	rec := output.NewRecord(e.Model(), words)
	rec.WordsUsed = p.Words
	rec.Truncated = p.Truncated
	rec.PromptTokens = tokens

	// 4. Send it, unless this is a dry run.
	if describeDryRun {
		rec.DryRun = true
		rec.Messages = p.Messages
	} else {
		c, err := e.Send(cmd.Context(), p)
		if err != nil {
			return wrapExit(ExitRemoteFailure, err, "topwords: describe failed (%v)", err)
		}
		text, err := llm.FirstChoiceText(c)
		if err != nil {
			return wrapExit(ExitRemoteFailure, err, "topwords: describe failed (%v)", err)
		}
		rec.Description = text
		rec.Completion = c
		slog.Info("description received", "id", c.ID, "total_tokens", c.Usage.TotalTokens)
	}

	// 5. Render. Files never get colour, whatever stdout is attached to.
	var buf bytes.Buffer
	if err := renderRecord(formatter, rec, &buf, describeOutput != ""); err != nil {
		return exitError(ExitInvalidArgs, "topwords: formatting failed (%v)", err)
	}
	return writeOutput(cmd.OutOrStdout(), describeOutput, buf.Bytes())
}

// renderRecord formats rec into w, with colour disabled when noColor is set.
func renderRecord(f output.Formatter, rec *output.Record, w io.Writer, noColor bool) error {
	if noColor {
		prev := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = prev }()
	}
	return f.Format(rec, w)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := cmdFS.MkdirAll(dir, 0o750); err != nil {
			return exitError(ExitInvalidArgs, "topwords: cannot create %s (%v)", dir, err)
		}
	}
	if err := cmdFS.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // output is not secret
		return exitError(ExitInvalidArgs, "topwords: cannot write %s (%v)", path, err)
	}
	slog.Info("output written", "path", path)
	return nil
}

// resetDescribeFlags resets describe command flags for testing.
func resetDescribeFlags() {
	describeSettings = settingsFlags{}
	describeFile = ""
	describeOutput = ""
	describeDryRun = false
	resetFlagSet(describeCmd)
}

// resetFlagSet restores every flag on cmd to its default and clears the
// Changed marks that drive config precedence.
func resetFlagSet(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

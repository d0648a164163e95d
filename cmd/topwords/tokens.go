package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Tokens-specific flag values.
var (
	tokensSettings settingsFlags
	tokensFile     string
	tokensJSON     bool
)

// tokensCmd prints the prompt size describe would send.
var tokensCmd = &cobra.Command{
	Use:   "tokens [words...]",
	Short: "Count the prompt tokens for a list of top-words",
	Long: `Count the tokens of the system and user messages that describe would
send for the given words, after truncation to --max-context-length.
No API key is needed and no request is made.`,
	RunE: runTokens,
}

func init() {
	tokensSettings.register(tokensCmd.Flags(), scopePrompt)
	tokensCmd.Flags().StringVarP(&tokensFile, "file", "f", "", `word list file ("-" for stdin)`)
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "machine-readable output")
}

// tokensResult is the --json output of the tokens command.
type tokensResult struct {
	Model            string `json:"model"`
	Tokens           int    `json:"tokens"`
	MaxContextLength int    `json:"max_context_length"`
	Words            int    `json:"words"`
	WordsUsed        int    `json:"words_used"`
	Truncated        bool   `json:"truncated"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, &tokensSettings)
	if err != nil {
		return err
	}
	words, err := collectWords(cmd, tokensFile, args)
	if err != nil {
		return exitError(ExitInvalidArgs, "topwords: %v", err)
	}

	e, err := newEnhancer(s, "")
	if err != nil {
		return wrapExit(ExitInvalidArgs, err, "topwords: %v", err)
	}
	p, err := e.Prepare(words, describeOptions(s)...)
	if err != nil {
		return wrapExit(ExitInvalidArgs, err, "topwords: %v", err)
	}
	n, err := e.CountTokens(p.Messages)
	if err != nil {
		return wrapExit(ExitInvalidArgs, err, "topwords: %v", err)
	}

	res := tokensResult{
		Model:            e.Model(),
		Tokens:           n,
		MaxContextLength: e.MaxContextLength(),
		Words:            len(words),
		WordsUsed:        len(p.Words),
		Truncated:        p.Truncated,
	}

	w := cmd.OutOrStdout()
	if tokensJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return exitError(ExitInvalidArgs, "topwords: JSON marshal failed (%v)", err)
		}
		_, _ = fmt.Fprintln(w, string(data))
		return nil
	}

	_, _ = fmt.Fprintf(w, "%d tokens (%s, max %d), %d/%d words\n", res.Tokens, res.Model, res.MaxContextLength, res.WordsUsed, res.Words)
	return nil
}

// resetTokensFlags resets tokens command flags for testing.
func resetTokensFlags() {
	tokensSettings = settingsFlags{}
	tokensFile = ""
	tokensJSON = false
	resetFlagSet(tokensCmd)
}

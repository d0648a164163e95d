package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	topwordslog "github.com/davetashner/topwords/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logFormat string
)

// rootCmd is the base command for topwords.
var rootCmd = &cobra.Command{
	Use:   "topwords",
	Short: "Describe topic-model topics from their top-words",
	Long: `Topwords turns the top-words of a topic model into a natural-language
description of the topic. It builds a prompt from the words, drops trailing
words that do not fit the model's context length, and asks an OpenAI chat
model for the common topic and its sub-topics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if noColor {
			color.NoColor = true
		}
		if _, err := topwordslog.Setup(cmd.ErrOrStderr(), logFormat, verbose, quiet); err != nil {
			return exitError(ExitInvalidArgs, "topwords: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format on stderr (text, json)")

	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

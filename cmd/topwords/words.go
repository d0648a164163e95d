package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/topwords/internal/wordlist"
)

// collectWords reads the word list file (if any) followed by the positional
// arguments. The file "-" is read from the command's stdin.
func collectWords(cmd *cobra.Command, file string, args []string) ([]string, error) {
	var words []string
	switch file {
	case "":
	case "-":
		w, err := wordlist.Read(cmd.InOrStdin(), wordlist.FormatText)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		words = w
	default:
		w, err := wordlist.ReadFile(cmdFS, file)
		if err != nil {
			return nil, err
		}
		words = w
	}

	words = append(words, wordlist.FromArgs(args)...)
	if len(words) == 0 {
		return nil, fmt.Errorf("no words given; pass them as arguments or with --file")
	}
	return words, nil
}

package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/davetashner/topwords/internal/config"
	"github.com/davetashner/topwords/internal/llm"
	"github.com/davetashner/topwords/internal/tokenizer"
)

// cliResult captures one CLI invocation.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// testEnv isolates a CLI test: a fresh working directory, an empty global
// config dir, a mock tokenizer and a mock completer. It returns the mock and
// the working directory.
func testEnv(t *testing.T, responses ...llm.MockResponse) (*llm.MockCompleter, string) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(config.APIKeyEnv, "sk-test-0123456789abcdefghij")
	t.Setenv(llm.OrgIDEnv, "")

	mock := llm.NewMockCompleter(responses...)
	prevCompleter, prevTokenizer, prevFS := newCompleter, tokenizerFor, cmdFS
	newCompleter = func(config.Settings, string) (llm.Completer, error) { return mock, nil }
	tokenizerFor = tokenizer.MockResolver()
	prevNoColor := color.NoColor
	color.NoColor = true
	prevLogger := slog.Default()

	t.Cleanup(func() {
		newCompleter, tokenizerFor, cmdFS = prevCompleter, prevTokenizer, prevFS
		color.NoColor = prevNoColor
		slog.SetDefault(prevLogger)
		resetAllFlags()
	})
	resetAllFlags()
	return mock, dir
}

// resetAllFlags restores every command's flags to their defaults.
func resetAllFlags() {
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	resetDescribeFlags()
	resetTokensFlags()
	resetConfigFlags()
	resetInitFlags()
	mcpServeSettings = settingsFlags{}
	resetFlagSet(mcpServeCmd)
}

// runCLI executes the root command with args and stdin.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// exitCodeOf extracts the exit code carried by err, or -1.
func exitCodeOf(err error) int {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece.code
	}
	return -1
}

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/topwords/internal/bootstrap"
)

// Init-specific flag values.
var initForce bool

// initCmd bootstraps topwords in a directory.
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Set up topwords in a directory",
	Long: `Create a starter .topwords.yaml with the default settings, make sure
.env is listed in .gitignore, and register the topwords MCP server in
.mcp.json when a .claude/ directory is present.

This command is non-destructive by default: it skips files that already
exist. Use --force to regenerate .topwords.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing .topwords.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return exitError(ExitInvalidArgs, "topwords: cannot resolve path %q (%v)", dir, err)
	}
	info, err := cmdFS.Stat(absPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "topwords: path %q does not exist", dir)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "topwords: %q is not a directory", dir)
	}

	slog.Info("initializing topwords", "path", absPath)

	result, err := bootstrap.Run(bootstrap.InitConfig{Dir: absPath, Force: initForce})
	if err != nil {
		return exitError(ExitInvalidArgs, "topwords: init failed (%v)", err)
	}

	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	_, _ = bold.Fprintln(w, "topwords init complete")
	for _, a := range result.Actions {
		var prefix string
		switch a.Operation {
		case "created":
			prefix = green.Sprint("  + ")
		case "updated":
			prefix = yellow.Sprint("  ~ ")
		default:
			prefix = dim.Sprint("  - ")
		}
		_, _ = fmt.Fprintf(w, "%s%-16s %s\n", prefix, a.File, dim.Sprintf("(%s)", a.Description))
	}

	if result.Changed() {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "Next steps:")
		_, _ = fmt.Fprintln(w, "  1. Put OPENAI_API_KEY in .env or your environment")
		_, _ = fmt.Fprintln(w, "  2. Run: topwords describe -f topic.txt")
	}
	return nil
}

// resetInitFlags resets init command flags for testing.
func resetInitFlags() {
	initForce = false
	resetFlagSet(initCmd)
}

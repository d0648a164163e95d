package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/topwords/internal/config"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify topwords configuration",
	Long: `View and modify topwords configuration.

Topwords reads configuration from .topwords.yaml in the working directory.
A global config at ~/.config/topwords/config.yaml provides defaults.
Repo-level settings override global settings, and flags override both.

The API key is never stored in these files; set OPENAI_API_KEY in the
environment or in a .env file.

Note: config set does a YAML round-trip and will not preserve comments.`,
}

// configGetCmd retrieves a configuration value by key.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by key.

Examples:
  topwords config get model
  topwords config get --global max_context_length`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, float, or string.
By default, writes to .topwords.yaml in the current directory.
Use --global to write to ~/.config/topwords/config.yaml.

Examples:
  topwords config set model gpt-4
  topwords config set max_context_length 8000
  topwords config set temperature 0.2
  topwords config set --global corpus_instruction "The corpus is news articles."`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the repo config (.topwords.yaml) or global config
(~/.config/topwords/config.yaml). Repo values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/topwords/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/topwords/config.yaml)")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

// resetConfigFlags resets config command flags for testing.
func resetConfigFlags() {
	configGlobal = false
	resetFlagSet(configGetCmd)
	resetFlagSet(configSetCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	var cfg *config.Config
	if configGlobal {
		globalCfg, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		cfg = globalCfg
	} else {
		repoCfg, err := config.Load(".")
		if err != nil {
			return fmt.Errorf("loading repo config: %w", err)
		}
		globalCfg, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		cfg = config.MergeFiles(globalCfg, repoCfg)
	}

	val, err := config.GetValue(cfg, key)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	rawValue := args[1]

	if err := config.ValidateKeyPath(key); err != nil {
		return err
	}

	targetPath := filepath.Join(".", config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	if err := config.SetValue(data, key, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip validate before writing.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return err
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, rawValue)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading repo config: %w", err)
	}

	globalMap, err := config.ToMap(globalCfg)
	if err != nil {
		return err
	}
	repoMap, err := config.ToMap(repoCfg)
	if err != nil {
		return err
	}

	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	for k, v := range globalMap {
		seen[k] = entry{value: v, source: "global"}
	}
	for k, v := range repoMap {
		seen[k] = entry{value: v, source: "repo"}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'topwords config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	repoColor := color.New(color.FgGreen)

	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, formatSource(e.source, globalColor, repoColor))
	}
	return nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, repoColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprint("(global)")
	case "repo":
		return repoColor.Sprint("(repo)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}

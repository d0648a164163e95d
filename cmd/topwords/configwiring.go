package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/topwords/internal/config"
	"github.com/davetashner/topwords/internal/llm"
	"github.com/davetashner/topwords/internal/tokenizer"
	"github.com/davetashner/topwords/internal/topword"
)

// settingsFlags holds the flags that override config file settings. Commands
// that build an Enhancer register the subset they need.
type settingsFlags struct {
	model             string
	maxContextLength  int
	temperature       float64
	instruction       string
	corpusInstruction string
	wordLimit         int
	baseURL           string
	timeout           time.Duration
	format            string
}

// flagScope selects which settings flags a command registers. Each scope
// includes the ones before it.
type flagScope int

const (
	scopePrompt  flagScope = iota // prompt construction only
	scopeRequest                  // plus temperature, base URL and timeout
	scopeRender                   // plus the output format
)

// register adds the settings flags for scope to fs.
func (f *settingsFlags) register(fs *pflag.FlagSet, scope flagScope) {
	fs.StringVar(&f.model, "model", topword.DefaultModel, "chat model; also selects the tokenizer")
	fs.IntVar(&f.maxContextLength, "max-context-length", topword.DefaultMaxContextLength, "token budget for the prompt")
	fs.StringVar(&f.instruction, "instruction", "", "replace the built-in system instruction")
	fs.StringVar(&f.corpusInstruction, "corpus-instruction", "", "extra system instruction describing the corpus")
	fs.IntVarP(&f.wordLimit, "words", "n", 0, "use at most this many leading words (0 = all)")
	if scope >= scopeRequest {
		fs.Float64Var(&f.temperature, "temperature", topword.DefaultTemperature, "sampling temperature (0.0-2.0)")
		fs.StringVar(&f.baseURL, "base-url", "", "OpenAI-compatible API base URL")
		fs.DurationVar(&f.timeout, "timeout", 0, "HTTP timeout for the chat request (0 = none)")
	}
	if scope >= scopeRender {
		fs.StringVar(&f.format, "format", "text", "output format (json, markdown, text)")
	}
}

// overrides returns the explicitly set flags as a Config so they go through
// the same validation and merge as the config files.
func (f *settingsFlags) overrides(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := &config.Config{}
	if fs.Changed("model") {
		cfg.Model = f.model
	}
	if fs.Changed("max-context-length") {
		if f.maxContextLength <= 0 {
			return nil, fmt.Errorf("--max-context-length must be positive (got %d)", f.maxContextLength)
		}
		cfg.MaxContextLength = f.maxContextLength
	}
	if fs.Changed("timeout") && f.timeout < 0 {
		return nil, fmt.Errorf("--timeout must not be negative (got %s)", f.timeout)
	}
	if fs.Changed("temperature") {
		t := f.temperature
		cfg.Temperature = &t
	}
	if fs.Changed("instruction") {
		cfg.BasicInstruction = f.instruction
	}
	if fs.Changed("corpus-instruction") {
		cfg.CorpusInstruction = f.corpusInstruction
	}
	if fs.Changed("words") {
		cfg.WordLimit = f.wordLimit
	}
	if fs.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if fs.Changed("format") {
		cfg.OutputFormat = f.format
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSettings resolves the effective settings: flags, then the repo config,
// then the global config, then built-in defaults.
func loadSettings(cmd *cobra.Command, f *settingsFlags) (config.Settings, error) {
	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "topwords: loading global config (%v)", err)
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "topwords: loading %s (%v)", config.FileName, err)
	}
	fileCfg := config.MergeFiles(globalCfg, repoCfg)
	if err := config.Validate(fileCfg); err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "topwords: %v", err)
	}

	flagCfg, err := f.overrides(cmd.Flags())
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "topwords: %v", err)
	}

	s := config.Apply(config.Apply(config.Defaults(), fileCfg), flagCfg)
	if cmd.Flags().Changed("words") {
		// --words 0 lifts a cap set in a config file.
		s.WordLimit = f.wordLimit
	}
	s.Timeout = f.timeout
	slog.Debug("settings resolved", "model", s.Model, "max_context_length", s.MaxContextLength,
		"temperature", s.Temperature, "word_limit", s.WordLimit, "format", s.OutputFormat, "timeout", s.Timeout)
	return s, nil
}

// loadAPIKey loads .env from the working directory and returns the API key
// from the environment.
func loadAPIKey() string {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}
	return config.APIKey()
}

// errNoAPIKey is returned by the offline completer.
var errNoAPIKey = fmt.Errorf("%s is not set; export it or add it to a .env file", config.APIKeyEnv)

// offlineKey stands in for the API key when no request will be sent.
const offlineKey = "offline"

// offlineCompleter backs enhancers that only prepare prompts.
type offlineCompleter struct{}

func (offlineCompleter) Complete(context.Context, string, []llm.Message, float64) (*llm.Completion, error) {
	return nil, errNoAPIKey
}

// Test seams.
var (
	// newCompleter builds the chat client for a run.
	newCompleter = defaultCompleter

	// tokenizerFor resolves the tokenizer for a model.
	tokenizerFor tokenizer.Resolver = tokenizer.ForModel
)

// defaultCompleter returns an OpenAI client. The organization, if any, comes
// from OPENAI_ORG_ID.
func defaultCompleter(s config.Settings, apiKey string) (llm.Completer, error) {
	opts := []llm.OpenAIOption{llm.WithAPIKey(apiKey)}
	if s.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(s.BaseURL))
	}
	if s.Timeout > 0 {
		opts = append(opts, llm.WithHTTPClient(&http.Client{Timeout: s.Timeout}))
	}
	return llm.NewOpenAIProvider(opts...)
}

// newEnhancer builds an Enhancer from settings. An empty apiKey yields an
// enhancer that can prepare and count prompts but fails on Send.
func newEnhancer(s config.Settings, apiKey string) (*topword.Enhancer, error) {
	var completer llm.Completer = offlineCompleter{}
	key := offlineKey
	if apiKey != "" {
		c, err := newCompleter(s, apiKey)
		if err != nil {
			return nil, err
		}
		completer = c
		key = apiKey
	}

	return topword.New(key,
		topword.WithModel(s.Model),
		topword.WithMaxContextLength(s.MaxContextLength),
		topword.WithTemperature(s.Temperature),
		topword.WithBasicInstruction(s.BasicInstruction),
		topword.WithCorpusInstruction(s.CorpusInstruction),
		topword.WithCompleter(completer),
		topword.WithTokenizer(tokenizerFor),
		topword.WithLogger(slog.Default()),
	)
}

// describeOptions turns the word limit setting into describe options.
func describeOptions(s config.Settings) []topword.DescribeOption {
	if s.WordLimit > 0 {
		return []topword.DescribeOption{topword.WithWordLimit(s.WordLimit)}
	}
	return nil
}

// Package config handles .topwords.yaml configuration files.
package config

// Config represents the contents of a .topwords.yaml file. The API key is
// deliberately absent: it is read from the environment only.
type Config struct {
	Model             string   `yaml:"model,omitempty"`
	MaxContextLength  int      `yaml:"max_context_length,omitempty"`
	Temperature       *float64 `yaml:"temperature,omitempty"`
	BasicInstruction  string   `yaml:"basic_instruction,omitempty"`
	CorpusInstruction string   `yaml:"corpus_instruction,omitempty"`
	WordLimit         int      `yaml:"word_limit,omitempty"`
	BaseURL           string   `yaml:"base_url,omitempty"`
	OutputFormat      string   `yaml:"output_format,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".topwords.yaml"

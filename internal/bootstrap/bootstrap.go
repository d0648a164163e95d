// Package bootstrap sets up a working directory for topwords: a starter
// config file, a .gitignore entry for .env and an MCP server registration.
package bootstrap

import (
	"github.com/davetashner/topwords/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// InitConfig holds the inputs for the init command.
type InitConfig struct {
	Dir   string
	Force bool
}

// Action records a single file operation performed during init.
type Action struct {
	File        string // e.g. ".topwords.yaml", ".gitignore"
	Operation   string // "created", "updated", "skipped"
	Description string // human-readable detail
}

// InitResult holds the outcome of an init run.
type InitResult struct {
	Actions []Action
}

// Changed reports whether any file was created or updated.
func (r *InitResult) Changed() bool {
	for _, a := range r.Actions {
		if a.Operation == "created" || a.Operation == "updated" {
			return true
		}
	}
	return false
}

// Run writes the starter config, protects .env from commits and registers
// the MCP server. Existing files are left alone except for the config when
// Force is set.
func Run(cfg InitConfig) (*InitResult, error) {
	result := &InitResult{}

	steps := []func() (Action, error){
		func() (Action, error) { return GenerateConfig(cfg.Dir, cfg.Force) },
		func() (Action, error) { return EnsureGitignore(cfg.Dir) },
		func() (Action, error) { return GenerateMCPConfig(cfg.Dir) },
	}
	for _, step := range steps {
		a, err := step()
		if err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, a)
	}
	return result, nil
}

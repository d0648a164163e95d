package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// serverName is the key of the topwords entry in .mcp.json.
const serverName = "topwords"

// mcpConfig represents the structure of a .mcp.json file. Other servers are
// kept as raw JSON so they survive a rewrite untouched.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// mcpServerEntry is the topwords MCP server configuration.
type mcpServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// GenerateMCPConfig adds a topwords server entry to dir/.mcp.json. It only
// acts when an MCP-aware agent is detected through a .claude/ directory.
func GenerateMCPConfig(dir string) (Action, error) {
	if _, err := FS.Stat(filepath.Join(dir, ".claude")); err != nil {
		if os.IsNotExist(err) {
			return Action{
				File:        ".mcp.json",
				Operation:   "skipped",
				Description: "no .claude/ directory found",
			}, nil
		}
		return Action{}, fmt.Errorf("checking .claude directory: %w", err)
	}

	path := filepath.Join(dir, ".mcp.json")
	existing, err := FS.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Action{}, fmt.Errorf("reading .mcp.json: %w", err)
	}

	cfg := mcpConfig{MCPServers: map[string]json.RawMessage{}}
	op, desc := "created", "created with topwords MCP server entry"
	if err == nil {
		if jsonErr := json.Unmarshal(existing, &cfg); jsonErr != nil {
			return Action{}, fmt.Errorf("parsing .mcp.json: %w", jsonErr)
		}
		if _, ok := cfg.MCPServers[serverName]; ok {
			return Action{
				File:        ".mcp.json",
				Operation:   "skipped",
				Description: "topwords MCP server already configured",
			}, nil
		}
		if cfg.MCPServers == nil {
			cfg.MCPServers = map[string]json.RawMessage{}
		}
		op, desc = "updated", "added topwords MCP server entry"
	}

	entry, err := json.Marshal(mcpServerEntry{Command: "topwords", Args: []string{"mcp", "serve"}})
	if err != nil {
		return Action{}, fmt.Errorf("marshaling MCP server entry: %w", err)
	}
	cfg.MCPServers[serverName] = entry

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return Action{}, fmt.Errorf("marshaling .mcp.json: %w", err)
	}
	data = append(data, '\n')

	if err := FS.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // not secret
		return Action{}, fmt.Errorf("writing .mcp.json: %w", err)
	}
	return Action{File: ".mcp.json", Operation: op, Description: desc}, nil
}

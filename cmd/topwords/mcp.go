// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/topwords/internal/config"
	"github.com/davetashner/topwords/internal/mcpserver"
)

// mcpServeSettings holds the serve flags; tool calls may still override the
// word limit and corpus instruction.
var mcpServeSettings settingsFlags

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running topwords as an MCP server, exposing topic description and token counting to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing topwords' tools:
  - describe_topic: Describe the topic behind a list of top-words
  - count_tokens:   Count the prompt tokens for a list of top-words

Settings come from the same config files and flags as describe. Without
OPENAI_API_KEY the server still starts; count_tokens works and
describe_topic reports the missing key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings(cmd, &mcpServeSettings)
		if err != nil {
			return err
		}
		apiKey := loadAPIKey()
		if apiKey == "" {
			slog.Warn("API key not set, describe_topic will fail", "env", config.APIKeyEnv)
		}
		e, err := newEnhancer(s, apiKey)
		if err != nil {
			return wrapExit(ExitInvalidArgs, err, "topwords: %v", err)
		}
		return mcpserver.Run(cmd.Context(), Version, e, &mcp.StdioTransport{})
	},
}

func init() {
	mcpServeSettings.register(mcpServeCmd.Flags(), scopeRequest)
	mcpCmd.AddCommand(mcpServeCmd)
}

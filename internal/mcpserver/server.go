// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes topic description and token counting as tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/topwords/internal/topword"
)

// New creates an MCP server with the topwords tools registered. Every tool
// call is served by e.
func New(version string, e *topword.Enhancer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "topwords",
		Title:   "Topwords: topic descriptions from top-words",
		Version: version,
	}, nil)

	registerTools(server, &tools{enhancer: e})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, e *topword.Enhancer, transport mcp.Transport) error {
	return New(version, e).Run(ctx, transport)
}

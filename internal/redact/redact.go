// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

// Package redact provides utilities to strip API keys from strings before
// they appear in output, logs, or error messages.
package redact

import (
	"os"
	"regexp"
	"strings"
)

// Placeholder replaces every redacted value.
const Placeholder = "[REDACTED]"

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"OPENAI_API_KEY",
	"OPENAI_ORG_ID",
}

// keyPattern matches OpenAI-style secret keys ("sk-", "sk-proj-" ...) even
// when they did not come from the environment.
var keyPattern = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{16,}`)

// String replaces known secrets in s with Placeholder. Environment values
// shorter than 4 characters are ignored to avoid false positives. The
// environment is read on every call so keys loaded late (from a .env file)
// are still covered.
func String(s string) string {
	for _, name := range sensitiveEnvVars {
		if val := os.Getenv(name); len(val) >= 4 {
			s = strings.ReplaceAll(s, val, Placeholder)
		}
	}
	return keyPattern.ReplaceAllString(s, Placeholder)
}

// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

// Package tokenizer resolves model-specific token encoders used to measure
// prompt sizes before they are sent to a chat model.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// Encodings are read from the files embedded by tiktoken-go-loader, so
// counting tokens never touches the network.
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// ErrUnknownModel is returned when no encoding is registered for a model name.
var ErrUnknownModel = errors.New("tokenizer: unknown model")

// Encoder turns text into a token sequence. Only the length of the result is
// used by callers, so implementations need not be reversible.
type Encoder interface {
	Encode(text string) []int
}

// Resolver returns the encoder for a model name.
type Resolver func(model string) (Encoder, error)

// tiktokenEncoder adapts a tiktoken encoding to Encoder.
type tiktokenEncoder struct {
	enc *tiktoken.Tiktoken
}

// Encode encodes text with special tokens treated as ordinary text.
func (e tiktokenEncoder) Encode(text string) []int {
	return e.enc.Encode(text, nil, nil)
}

// getEncoding loads a named encoding. Replaced in tests.
var getEncoding = tiktoken.GetEncoding

// EncodingName returns the tiktoken encoding registered for model, by exact
// name first and then by prefix (e.g. "gpt-4-0613").
func EncodingName(model string) (string, bool) {
	if name, ok := tiktoken.MODEL_TO_ENCODING[model]; ok {
		return name, true
	}
	for prefix, name := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		if strings.HasPrefix(model, prefix) {
			return name, true
		}
	}
	return "", false
}

// ForModel resolves the tiktoken encoding registered for model. Only a model
// name with no registered encoding yields ErrUnknownModel; a failure to load
// a known encoding is returned as a separate error.
func ForModel(model string) (Encoder, error) {
	name, ok := EncodingName(model)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownModel, model)
	}
	enc, err := getEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: loading encoding %s for %q: %w", name, model, err)
	}
	return tiktokenEncoder{enc: enc}, nil
}

// Compile-time check that ForModel satisfies Resolver.
var _ Resolver = ForModel

// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package transform sends a file and an edit instruction to a chat-completion
// endpoint and returns the rewritten file content.
package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/editrc/pkg/fault"
	"github.com/walteh/editrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4.1"
	DefaultTemperature = 0.1
	DefaultTimeout     = 60 * time.Second

	// errorSnippetBytes bounds how much of a failed response body is kept for the error message
	errorSnippetBytes = 4 << 10
)

// 🔧 Options configures a Client. APIKey is resolved once by the caller and injected here.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float64 // nil uses DefaultTemperature
	Timeout     time.Duration
	HTTPClient  *http.Client // optional; its Timeout is overridden by Timeout when set
}

// 📨 Request is everything needed to transform one file
type Request struct {
	Path            string
	OriginalContent string
	Instruction     string
	Description     string
}

// 🤖 Client talks to an OpenAI-compatible chat completions endpoint
type Client struct {
	hc          *http.Client
	url         string
	apiKey      string
	model       string
	temperature float64
}

// 🏭 NewClient creates a client, filling defaults for unset options
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		cp := *opts.HTTPClient
		hc = &cp
	}
	hc.Timeout = opts.Timeout

	return &Client{
		hc:          hc,
		url:         strings.TrimRight(opts.BaseURL, "/") + "/chat/completions",
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: temperature,
	}
}

// Model returns the model identifier sent with each request.
func (c *Client) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// 🔄 Transform sends one request and returns the sanitized replacement content.
// Every error is a *fault.Error; the returned content is empty whenever err is non-nil.
func (c *Client) Transform(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", fault.New(fault.KindMissingCredential, req.Path, errors.New("no API key configured"))
	}

	logger := zerolog.Ctx(ctx).With().Str("path", req.Path).Str("model", c.model).Logger()

	prompt := BuildPrompt(req)
	body, err := json.Marshal(&chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fault.Remote(0, errors.Errorf("encoding request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fault.Remote(0, errors.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	logger.Debug().Int("prompt_bytes", len(prompt)).Msg("sending transformation request")

	start := time.Now()
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return "", fault.Remote(0, errors.Errorf("calling %s: %w", c.url, err))
	}
	defer resp.Body.Close()

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("received transformation response")

	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetBytes))
		return "", fault.Remote(resp.StatusCode, errors.Errorf("remote returned %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp))))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fault.New(fault.KindRemoteContentMissing, req.Path, errors.Errorf("decoding response: %w", err))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return "", fault.New(fault.KindRemoteContentMissing, req.Path, errors.New("response has no message content"))
	}

	content := text.StripFences(*parsed.Choices[0].Message.Content)
	if text.HasFence(content) && !isMarkdown(req.Path) {
		logger.Debug().Str("path", req.Path).Msg("dropping leftover fence lines")
		content = text.DropFenceLines(content)
	}
	if content == "" {
		return "", fault.New(fault.KindRemoteContentMissing, req.Path, errors.New("response content is empty"))
	}

	if text.HasFence(content) {
		logger.Warn().Str("path", req.Path).Msg("generated content contains backticks after sanitization")
	}

	return content, nil
}

// isMarkdown reports whether fenced blocks are legitimate content of the target
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdx":
		return true
	}
	return false
}

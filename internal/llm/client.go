// Package llm wraps the external generative providers behind small HTTP
// clients: an OpenAI-compatible chat-completions endpoint for text and a
// form-based image endpoint for text-to-image and object removal.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// maxConcurrent caps in-flight provider calls across all requests.
const maxConcurrent = 5

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to an OpenAI-compatible chat-completions API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client

	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: timeout},
		sem:     semaphore.NewWeighted(maxConcurrent),
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatOptions tune a single completion call. Zero values fall back to
// provider defaults.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// Complete sends the conversation to the provider and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("llm queue full: %w", err)
	}
	defer c.sem.Release(1)

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, _ := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	start := time.Now()
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("llm decode: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := "upstream error"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("llm error (status %d): %s", resp.StatusCode, msg)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	log.Printf("[llm] model=%s latency=%s", c.Model, time.Since(start))
	return out.Choices[0].Message.Content, nil
}

// readErrorBody pulls a short error description out of a provider response.
func readErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	if len(b) == 0 {
		return "no response body"
	}
	return string(b)
}

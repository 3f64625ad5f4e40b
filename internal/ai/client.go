// Package ai wraps the hosted Gemini API behind a throttled client and
// provides the resume enhancement and cover letter pipelines. Every model
// call has a deterministic fallback so the service degrades instead of
// failing when the API key is missing or the quota is exhausted.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/config"
	"google.golang.org/genai"
)

// ErrUnavailable is returned when no API key is configured.
var ErrUnavailable = errors.New("gemini client not configured")

// Client is a throttled Gemini text-generation client. Calls are spaced at
// least minInterval apart to stay inside the free-tier request quota.
type Client struct {
	genai       *genai.Client
	model       string
	minInterval time.Duration
	log         zerolog.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// NewClient builds a Client from configuration. A missing GEMINI_API_KEY is
// not an error: the returned client reports Available() == false and the
// pipelines fall back to deterministic output.
func NewClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Client, error) {
	c := &Client{
		model:       cfg.GeminiModel,
		minInterval: cfg.GeminiMinInterval,
		log:         log.With().Str("component", "gemini_client").Logger(),
	}

	if cfg.GeminiAPIKey == "" {
		c.log.Warn().Msg("GEMINI_API_KEY not set - AI features will use fallback mode")
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	c.genai = gc
	c.log.Info().Str("model", c.model).Msg("Gemini API configured")
	return c, nil
}

// Available reports whether real model calls can be made.
func (c *Client) Available() bool {
	return c != nil && c.genai != nil
}

// Generate sends a single prompt and returns the trimmed response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	c.throttle()

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

// throttle blocks until at least minInterval has passed since the last call.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastCall); elapsed < c.minInterval {
		time.Sleep(c.minInterval - elapsed)
	}
	c.lastCall = time.Now()
}

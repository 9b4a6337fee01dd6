// Package gemini wraps the Google GenAI SDK behind a small invoker with
// model fallback. A process-wide set of known-unavailable model ids is
// consulted before every call so a broken candidate is only paid for once
package gemini

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/genai"

	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
)

// DefaultModel is tried first when no preferred model is configured
const DefaultModel = "gemini-2.5-flash"

// fallbackModels in preference order after the configured model
var fallbackModels = []string{
	"gemini-3.0-flash",
	"gemini-3-flash",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
}

// InvalidSet remembers model ids the upstream rejected as unknown.
// Reads vastly outnumber writes, staleness across goroutines is
// acceptable and self-heals within one extra failed call
type InvalidSet struct {
	mu sync.RWMutex
	m  map[string]bool
}

// NewInvalidSet returns an empty set
func NewInvalidSet() *InvalidSet {
	return &InvalidSet{m: make(map[string]bool)}
}

// Mark records a model id as unavailable. Never unmarked
func (s *InvalidSet) Mark(model string) {
	s.mu.Lock()
	s.m[model] = true
	s.mu.Unlock()
}

// Has reports whether a model id is known bad
func (s *InvalidSet) Has(model string) bool {
	s.mu.RLock()
	ok := s.m[model]
	s.mu.RUnlock()
	return ok
}

// Options configures a Client
type Options struct {
	APIKey string
	// Model is tried before the built-in fallbacks when set
	Model string
	// Invalid is the shared unavailable-model set, one per process
	Invalid *InvalidSet
}

// Client invokes Gemini models with candidate fallback
type Client struct {
	candidates []string
	invalid    *InvalidSet
	log        logger.Logger

	// generate is the upstream seam, swapped in tests
	generate func(ctx context.Context, model, system, prompt string) (string, error)
}

// New builds a Client and its underlying SDK connection
func New(ctx context.Context, opt Options) (*Client, error) {
	if opt.APIKey == "" {
		return nil, perr.InvalidArgf("gemini api key required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opt.APIKey})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "gemini client init failed")
	}

	inv := opt.Invalid
	if inv == nil {
		inv = NewInvalidSet()
	}

	c := &Client{
		candidates: expandCandidates(opt.Model),
		invalid:    inv,
		log:        *logger.Named("gemini"),
	}
	c.generate = func(ctx context.Context, model, system, prompt string) (string, error) {
		contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
		var cfg *genai.GenerateContentConfig
		if system != "" {
			cfg = &genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			}
		}
		res, err := gc.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	}
	return c, nil
}

// expandCandidates builds the ordered candidate list, each id also
// tried with a models/ prefix, duplicates removed order-preserving
func expandCandidates(preferred string) []string {
	base := make([]string, 0, 1+len(fallbackModels))
	if preferred == "" {
		preferred = DefaultModel
	}
	base = append(base, preferred)
	base = append(base, fallbackModels...)

	seen := make(map[string]bool, 2*len(base))
	out := make([]string, 0, 2*len(base))
	for _, m := range base {
		for _, id := range []string{m, "models/" + m} {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// notFound classifies an upstream error as unknown-model
func notFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}

// Generate walks the candidate list until a model answers. Unknown
// models are marked invalid and skipped on every later call, any other
// upstream failure is returned as is
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	var lastErr error
	for _, model := range c.candidates {
		if c.invalid.Has(model) {
			continue
		}
		text, err := c.generate(ctx, model, system, prompt)
		if err != nil {
			if notFound(err) {
				c.log.Warn().Str("model", model).Msg("model unavailable, marking invalid")
				c.invalid.Mark(model)
				lastErr = err
				continue
			}
			return "", err
		}
		return text, nil
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", perr.Unavailablef("no available Gemini model")
}

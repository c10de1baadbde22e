// Package local provides an on-device vision analysis backend. It needs no
// credential: the model runs through the Kronk runtime on the local machine.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ardanlabs/kronk/sdk/kronk"
	"github.com/ardanlabs/kronk/sdk/kronk/model"
	"github.com/ardanlabs/kronk/sdk/tools/models"

	"github.com/ramon-reichert/photoshelf/internal/analyze"
	"github.com/ramon-reichert/photoshelf/internal/library"
	platform "github.com/ramon-reichert/photoshelf/internal/platform/kronk"
	"github.com/ramon-reichert/photoshelf/internal/platform/logger"
)

var (
	ErrModelNotLoaded = errors.New("vision model not loaded")
	ErrEmptyImage     = errors.New("empty image data")
)

const prompt = `Analyze this photo for a photo management application.
Reply with a single JSON object and nothing else, using this exact shape:
{"tags": ["tag1", "tag2"], "description": "one sentence", "ratingSuggestion": 3}
Provide 5-10 short searchable tags, a concise 1-sentence description, and a
technical rating from 1 to 5 based on composition, focus, and exposure.`

// Backend manages the local vision model for photo analysis.
type Backend struct {
	log   logger.Logger
	paths models.Path

	mu  sync.Mutex
	krn *kronk.Kronk
}

// Config holds configuration for creating a Backend.
type Config struct {
	Log   logger.Logger
	Paths models.Path
}

// New creates a Backend with the given configuration.
func New(cfg Config) *Backend {
	return &Backend{
		log:   cfg.Log,
		paths: cfg.Paths,
	}
}

// Load loads the vision model into memory.
func (b *Backend) Load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.krn != nil {
		return nil
	}

	start := time.Now()
	b.log(ctx, "loading vision model")

	krn, err := kronk.New(platform.VisionConfig(b.paths))
	if err != nil {
		return fmt.Errorf("load vision model: %w", err)
	}

	b.krn = krn
	b.log(ctx, "vision model loaded",
		"loading time", time.Since(start),
		"context_window", krn.ModelConfig().ContextWindow,
	)

	return nil
}

// Unload unloads the vision model from memory.
func (b *Backend) Unload(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.krn == nil {
		return nil
	}

	b.log(ctx, "unloading vision model")

	if err := b.krn.Unload(ctx); err != nil {
		return fmt.Errorf("unload vision model: %w", err)
	}

	b.krn = nil
	return nil
}

// IsLoaded returns true if the vision model is loaded.
func (b *Backend) IsLoaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.krn != nil
}

// Analyze runs the vision model over the JPEG payload and parses the
// structured result. The model must be loaded first via Load.
func (b *Backend) Analyze(ctx context.Context, jpegPayload []byte) (library.AnalysisResult, error) {
	b.mu.Lock()
	krn := b.krn
	b.mu.Unlock()

	if krn == nil {
		return library.AnalysisResult{}, ErrModelNotLoaded
	}

	if len(jpegPayload) == 0 {
		return library.AnalysisResult{}, ErrEmptyImage
	}

	data := model.D{
		"messages":    model.RawMediaMessage(prompt, jpegPayload),
		"temperature": 0.3,
		"max_tokens":  256,
	}

	start := time.Now()

	resp, err := krn.Chat(ctx, data)
	if err != nil {
		return library.AnalysisResult{}, fmt.Errorf("chat: %w", err)
	}

	content := resp.Choice[0].Message.Content

	b.log(ctx, "local analysis finished", "elapsed", time.Since(start))

	result, err := parseResult(content)
	if err != nil {
		return library.AnalysisResult{}, err
	}

	return result, nil
}

// parseResult extracts the JSON object from the model output. Small local
// models sometimes wrap the object in code fences or prose.
func parseResult(content string) (library.AnalysisResult, error) {
	begin := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if begin < 0 || end <= begin {
		return library.AnalysisResult{}, fmt.Errorf("no json object in output: %w", analyze.ErrMalformedResponse)
	}

	var result library.AnalysisResult
	if err := json.Unmarshal([]byte(content[begin:end+1]), &result); err != nil {
		return library.AnalysisResult{}, fmt.Errorf("parse output: %w", analyze.ErrMalformedResponse)
	}

	if len(result.Tags) == 0 || result.Description == "" {
		return library.AnalysisResult{}, fmt.Errorf("incomplete output: %w", analyze.ErrMalformedResponse)
	}

	if result.RatingSuggestion < 1 {
		result.RatingSuggestion = 1
	}
	if result.RatingSuggestion > 5 {
		result.RatingSuggestion = 5
	}

	return result, nil
}

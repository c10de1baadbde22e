// Package gemini provides the Gemini-backed vision analysis backend.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"google.golang.org/genai"

	"github.com/ramon-reichert/photoshelf/internal/analyze"
	"github.com/ramon-reichert/photoshelf/internal/library"
)

// ErrNoAPIKey is returned when constructing a client without a credential.
var ErrNoAPIKey = errors.New("gemini api key is required")

const prompt = `Analyze this image for a photo management application.
1. Provide 5-10 precise, searchable tags (keywords) describing the content, mood, and technical aspects (e.g., "landscape", "low-light", "bokeh").
2. Write a concise 1-sentence description.
3. Suggest a technical rating from 1 to 5 based on composition, focus, and exposure (1=poor, 5=professional).`

// Client calls the Gemini API for photo analysis.
type Client struct {
	client   *genai.Client
	model    string
	validate *validator.Validate
}

// New creates a Client. The api key is required; callers detect its absence
// at startup and disable the feature instead.
func New(ctx context.Context, apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("new genai client: %w", err)
	}

	return &Client{
		client:   client,
		model:    model,
		validate: validator.New(),
	}, nil
}

// Analyze sends the downscaled JPEG payload and parses the structured result.
func (c *Client) Analyze(ctx context.Context, jpegPayload []byte) (library.AnalysisResult, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(jpegPayload, "image/jpeg"),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"tags": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "List of relevant tags",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "Short description of the photo",
				},
				"ratingSuggestion": {
					Type:        genai.TypeInteger,
					Description: "Suggested rating 1-5",
				},
			},
			Required: []string{"tags", "description", "ratingSuggestion"},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return library.AnalysisResult{}, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return library.AnalysisResult{}, fmt.Errorf("empty response body: %w", analyze.ErrMalformedResponse)
	}

	var result library.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return library.AnalysisResult{}, fmt.Errorf("parse response: %w", analyze.ErrMalformedResponse)
	}

	if err := c.validate.Struct(result); err != nil {
		return library.AnalysisResult{}, fmt.Errorf("validate response: %w", analyze.ErrMalformedResponse)
	}

	return result, nil
}

package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// GeminiSynthesizer generates SQL with the Gemini API.
type GeminiSynthesizer struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	timeout   time.Duration
}

func NewGeminiSynthesizer(ctx context.Context, cfg GeminiConfig) (*GeminiSynthesizer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		return nil, fmt.Errorf("model is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("initialize gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	temperature := float32(cfg.Temperature)
	model.Temperature = &temperature

	return &GeminiSynthesizer{
		client:    client,
		model:     model,
		modelName: modelName,
		timeout:   timeout,
	}, nil
}

func (s *GeminiSynthesizer) Synthesize(ctx context.Context, question string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.model.GenerateContent(ctx, genai.Text(BuildPrompt(question)))
	if err != nil {
		return Result{}, &GenerationError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Result{}, &GenerationError{Provider: "gemini", Err: fmt.Errorf("no response candidates")}
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return Result{}, &GenerationError{Provider: "gemini", Err: fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])}
	}

	sqlText := StripFences(string(text))
	if sqlText == "" {
		return Result{}, &GenerationError{Provider: "gemini", Err: fmt.Errorf("model returned empty SQL")}
	}
	return Result{SQL: sqlText, Provider: "gemini", Model: s.modelName}, nil
}

func (s *GeminiSynthesizer) Close() error {
	return s.client.Close()
}

package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// OpenAISynthesizer speaks the chat-completions protocol of any
// OpenAI-compatible endpoint.
type OpenAISynthesizer struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

func NewOpenAISynthesizer(cfg OpenAIConfig) (*OpenAISynthesizer, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OpenAISynthesizer{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, question string) (Result, error) {
	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": BuildPrompt(question)},
		},
		"temperature": s.temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("marshal chat payload: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("build chat request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("request chat completion: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("read chat response body: %w", err)}
	}
	if resp.StatusCode >= 400 {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("chat completion failed status=%d body=%s", resp.StatusCode, string(rawBody))}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("decode chat completion response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("empty chat completion choices")}
	}

	sqlText := StripFences(parsed.Choices[0].Message.Content)
	if sqlText == "" {
		return Result{}, &GenerationError{Provider: "openai", Err: fmt.Errorf("model returned empty SQL")}
	}
	return Result{SQL: sqlText, Provider: "openai", Model: s.model}, nil
}

package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nubotics/go-nubot/internal/httpc"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// OpenAI implements Service against the OpenAI chat completions API.
type OpenAI struct {
	apiKey     string
	model      string
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	client     *http.Client
	logger     *slog.Logger
}

// OpenAIOption configures the OpenAI backend.
type OpenAIOption func(*OpenAI)

// WithModel sets the chat model.
func WithModel(model string) OpenAIOption {
	return func(o *OpenAI) { o.model = model }
}

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(url string) OpenAIOption {
	return func(o *OpenAI) { o.baseURL = url }
}

// WithRetry configures retry behavior for transient failures.
func WithRetry(maxRetries int, delay time.Duration) OpenAIOption {
	return func(o *OpenAI) {
		o.maxRetries = maxRetries
		o.retryDelay = delay
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) OpenAIOption {
	return func(o *OpenAI) { o.client = client }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) OpenAIOption {
	return func(o *OpenAI) { o.logger = logger }
}

// NewOpenAI creates an OpenAI chat backend.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion: API key required")
	}
	o := &OpenAI{
		apiKey:     apiKey,
		model:      "gpt-4",
		baseURL:    openAIChatURL,
		maxRetries: 2,
		retryDelay: 100 * time.Millisecond,
		client:     httpc.Client,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "completion.openai")
	return o, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the utterance with the language's persona prompt and
// returns the generated reply.
func (o *OpenAI) Complete(ctx context.Context, lang, text string) (string, error) {
	payload := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(lang)},
			{Role: "user", Content: text},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("completion: marshal payload: %w", err)
	}

	start := time.Now()
	resp, err := o.doWithRetry(ctx, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", o.parseError(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("completion: decode response: %w (%w)", err, ErrUnavailable)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion: empty choices (%w)", ErrUnavailable)
	}

	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	o.logger.Debug("completion generated",
		"lang", lang,
		"chars", len(reply),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return reply, nil
}

// doWithRetry performs the request, retrying rate limits and 5xx.
func (o *OpenAI) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("completion: %w (%w)", ctx.Err(), ErrUnavailable)
			case <-time.After(o.retryDelay * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("completion: create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := o.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("completion: %w (%w)", err, ErrUnavailable)
			continue
		}

		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			lastErr = o.parseError(resp)
			resp.Body.Close()
			o.logger.Warn("retrying completion request",
				"attempt", attempt+1,
				"status", resp.StatusCode,
			)
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// parseError reads and parses an error response.
func (o *OpenAI) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	message := string(body)
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// Verify OpenAI implements Service at compile time.
var _ Service = (*OpenAI)(nil)

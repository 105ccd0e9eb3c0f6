package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrUpstream covers every provider failure mode uniformly: network
// error, non-2xx status, quota, empty candidate list, timeout.
var ErrUpstream = errors.New("ai provider failure")

// TextGenerator is the single-call contract the adapters consume.
// One prompt in, one text out; no retries.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the generateContent REST endpoint.
type GeminiClient struct {
	httpClient *resty.Client
	model      string
	apiKey     string
	logger     *zap.Logger
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewGeminiClient builds a client with an explicit request timeout;
// a timed-out call surfaces as ErrUpstream like any other failure.
func NewGeminiClient(apiKey string, model string, timeout time.Duration, logger *zap.Logger) *GeminiClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().
		SetBaseURL("https://generativelanguage.googleapis.com/v1beta").
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &GeminiClient{
		httpClient: client,
		model:      model,
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (client *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	request := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2048,
		},
	}

	var response geminiResponse
	resp, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", client.apiKey).
		SetBody(request).
		SetResult(&response).
		SetError(&response).
		Post(fmt.Sprintf("/models/%s:generateContent", client.model))
	if err != nil {
		client.logger.Warn("gemini call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() || response.Error != nil {
		message := resp.Status()
		if response.Error != nil {
			message = response.Error.Message
		}
		client.logger.Warn("gemini returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", message),
		)
		return "", fmt.Errorf("%w: %s", ErrUpstream, message)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}

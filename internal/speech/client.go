// Package speech wraps the Google speech:recognize REST endpoint
// behind a single transcription call.
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrTranscription covers every provider failure uniformly, timeouts
// included.
var ErrTranscription = errors.New("speech transcription failure")

// Transcriber is the contract handlers consume.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string, encoding string, sampleRateHertz int) (string, float64, error)
}

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
	LanguageCode    string `json:"languageCode"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client is the production transcriber.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	logger     *zap.Logger
}

func NewClient(apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL("https://speech.googleapis.com/v1").
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{httpClient: httpClient, apiKey: apiKey, logger: logger}
}

// Transcribe sends the audio once and returns the top alternative.
// Defaults match the browser capture pipeline: Korean, WEBM_OPUS,
// 48kHz.
func (client *Client) Transcribe(ctx context.Context, audio []byte, language string, encoding string, sampleRateHertz int) (string, float64, error) {
	if language == "" {
		language = "ko-KR"
	}
	if encoding == "" {
		encoding = "WEBM_OPUS"
	}
	if sampleRateHertz <= 0 {
		sampleRateHertz = 48000
	}

	request := recognizeRequest{
		Config: recognizeConfig{
			Encoding:        encoding,
			SampleRateHertz: sampleRateHertz,
			LanguageCode:    language,
		},
		Audio: recognizeAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	}

	var response recognizeResponse
	resp, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", client.apiKey).
		SetBody(request).
		SetResult(&response).
		SetError(&response).
		Post("/speech:recognize")
	if err != nil {
		client.logger.Warn("speech call failed", zap.Error(err))
		return "", 0, fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if resp.IsError() || response.Error != nil {
		message := resp.Status()
		if response.Error != nil {
			message = response.Error.Message
		}
		client.logger.Warn("speech returned error", zap.String("message", message))
		return "", 0, fmt.Errorf("%w: %s", ErrTranscription, message)
	}
	if len(response.Results) == 0 || len(response.Results[0].Alternatives) == 0 {
		return "", 0, fmt.Errorf("%w: no transcription result", ErrTranscription)
	}

	top := response.Results[0].Alternatives[0]
	return top.Transcript, top.Confidence, nil
}

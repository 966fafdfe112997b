package verify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You check photos submitted as proof that someone did a habit or goal.
Answer with a JSON object: {"verified": true|false, "feedback": "<one short sentence to the user>"}.
Verify only when the photo plausibly shows the goal being done today. Be encouraging when rejecting.`

type OpenAIVerifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIVerifier builds a vision verifier for model. baseURL is optional and
// points the client at an OpenAI-compatible endpoint.
func NewOpenAIVerifier(apiKey, baseURL, model string, timeout time.Duration) *OpenAIVerifier {
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	slog.Info("initializing OpenAI verifier", "model", model)
	return &OpenAIVerifier{
		client:  openai.NewClientWithConfig(conf),
		model:   model,
		timeout: timeout,
	}
}

func (o *OpenAIVerifier) Name() string {
	return o.model
}

type verdict struct {
	Verified bool   `json:"verified"`
	Feedback string `json:"feedback"`
}

func (o *OpenAIVerifier) Verify(ctx context.Context, photo Photo, title, description string) (Result, error) {
	if len(photo.Data) == 0 {
		return Result{}, errors.New("empty photo")
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	mime := photo.MimeType
	if mime == "" {
		mime = "image/jpeg"
	}
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(photo.Data)

	goal := "Goal: " + title
	if description != "" {
		goal += "\nDetails: " + description
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: goal},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURL,
						Detail: openai.ImageURLDetailLow,
					}},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxCompletionTokens: 200,
	}

	slog.Debug("verifying proof photo", "model", o.model, "bytes", len(photo.Data))
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, errors.New("OpenAI returned no choices")
	}

	v, err := parseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		return Result{}, err
	}
	return Result{Verified: v.Verified, Feedback: v.Feedback, Model: o.model}, nil
}

// parseVerdict reads the model's JSON answer, tolerating a fenced code block.
func parseVerdict(content string) (verdict, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var v verdict
	err := json.Unmarshal([]byte(content), &v)
	if err != nil {
		return verdict{}, fmt.Errorf("failed to parse verdict %q: %w", content, err)
	}
	return v, nil
}

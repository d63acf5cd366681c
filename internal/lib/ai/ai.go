// Package ai wraps the OpenAI-compatible text and image endpoints used by the
// draft generator.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

var ErrEmptyResponse = errors.New("ai: empty response")

type TextGenerator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type ImageGenerator interface {
	// GenerateImage returns an image URL or a data: URI.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	client     *openai.Client
	textModel  string
	imageModel string
}

func NewClient(apiKey, baseURL, textModel, imageModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(cfg),
		textModel:  textModel,
		imageModel: imageModel,
	}
}

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	const op = "ai.Client.Complete"

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	const op = "ai.Client.GenerateImage"

	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	img := resp.Data[0]
	switch {
	case img.B64JSON != "":
		return "data:image/png;base64," + img.B64JSON, nil
	case img.URL != "":
		return img.URL, nil
	}

	return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
}

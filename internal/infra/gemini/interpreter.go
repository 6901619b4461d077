package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "models/gemini-2.5-flash"

var ErrEmptyResponse = errors.New("gemini: empty response")

// Interpreter sends the assistant prompt to Gemini and returns the text of
// the first candidate.
type Interpreter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewInterpreter(ctx context.Context, apiKey, model string) (*Interpreter, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Interpreter{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (i *Interpreter) Interpret(ctx context.Context, prompt string) (string, error) {
	resp, err := i.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (i *Interpreter) Close() error {
	return i.client.Close()
}

var ErrNotConfigured = errors.New("gemini: GEMINI_API_KEY is not set")

// Disabled stands in for the interpreter when no API key is configured.
type Disabled struct{}

func (Disabled) Interpret(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

package genaisvc

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assistant"
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("the model returned no text")

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

var _ assistant.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator returns assistant.ErrMissingAPIKey when conf.Assistant.APIKey is empty.
func NewGeminiGenerator(ctx context.Context, conf *core.Config) (*GeminiGenerator, error) {
	if conf.Assistant.APIKey == "" {
		return nil, assistant.ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(conf.Assistant.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}

	model := client.GenerativeModel(conf.Assistant.Model)
	if conf.Assistant.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(conf.Assistant.SystemInstruction)}}
	}
	return &GeminiGenerator{client: client, model: model, timeout: conf.Assistant.Timeout}, nil
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "generating content")
	}
	return responseText(resp)
}

// responseText concatenates the text parts of every candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var sb strings.Builder
	if resp == nil {
		return "", ErrEmptyResponse
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

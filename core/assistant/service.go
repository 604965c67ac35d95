// Package assistant forwards free-text prompts to a text-generation backend.
// Ask never fails: every problem is turned into a message fit for display.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	// ErrMissingAPIKey is returned by generators built without credentials.
	ErrMissingAPIKey = errors.New("assistant: missing API key")

	MissingAPIKeyText = "API Key is not configured. Please set the API_KEY environment variable."
	failureTextFmt    = "An error occurred while contacting the AI assistant: %s"
)

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	gen    TextGenerator
	logger core.Logger
}

// NewService returns the assistant service. gen may be nil when no backend is configured.
func NewService(gen TextGenerator, logger core.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Ask returns the generated text, or the error message to display in its place.
func (svc *Service) Ask(ctx context.Context, prompt string) string {
	if svc.gen == nil {
		return MissingAPIKeyText
	}
	text, err := svc.gen.GenerateText(ctx, strings.TrimSpace(prompt))
	if err != nil {
		if errors.Cause(err) == ErrMissingAPIKey {
			return MissingAPIKeyText
		}
		svc.logger.Warn(fmt.Sprintf("assistant request failed: %v", err), err)
		return fmt.Sprintf(failureTextFmt, errors.Cause(err).Error())
	}
	return text
}

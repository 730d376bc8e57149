// Package tutor produces the AI tutor's reply to a learner message.
package tutor

import (
	"context"
	"fmt"

	"lingotutor/internal/config"
	"lingotutor/internal/domain"
)

// Request is one learner turn
type Request struct {
	Message        string
	TargetLanguage string
	Level          domain.Level
}

// Response is the tutor's answer. Success is false when the backend could not answer;
// ErrorMessage then says why.
type Response struct {
	Success      bool
	Reply        string
	GrammarNote  *string
	TokensUsed   int
	ErrorMessage string
}

// Tutor answers learner messages
type Tutor interface {
	Reply(ctx context.Context, req Request) (Response, error)
}

// New returns the tutor selected by cfg.Mode
func New(cfg config.TutorConfig) (Tutor, error) {
	switch cfg.Mode {
	case config.TutorModeMock, "":
		return NewMock(), nil
	case config.TutorModeOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.URL), nil
	default:
		return nil, fmt.Errorf("unknown tutor mode %q", cfg.Mode)
	}
}

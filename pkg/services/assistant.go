package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/llm"
)

// minDescriptionLen is the threshold below which the assistant is not
// consulted at all.
const minDescriptionLen = 5

const (
	assistantSystemMessage = "Kamu adalah asisten penulisan laporan teknis untuk manajemen gedung."
	assistantPromptFormat  = "Perbaiki deskripsi pekerjaan teknis berikut agar profesional untuk laporan building management Pemkot Bekasi. Padat dan jelas. Pekerjaan: %s"
)

// AssistantService cleans up free-text job descriptions through a
// generative-text backend. It never fails: every error path returns the
// input unchanged, because the assistant is an optional nicety and the
// description the vendor typed is always acceptable.
type AssistantService interface {
	PolishDescription(ctx context.Context, description string) string
}

// assistantService implements AssistantService.
type assistantService struct {
	client llm.LLMClient // nil when the assistant is not configured
	logger *zap.Logger
}

// NewAssistantService creates an assistant service. Pass a nil client when
// no generative-text backend is configured; the service then degrades to a
// pass-through.
func NewAssistantService(client llm.LLMClient, logger *zap.Logger) AssistantService {
	return &assistantService{
		client: client,
		logger: logger,
	}
}

// PolishDescription sends the description through the assistant backend and
// returns the cleaned-up text. Failures are logged and swallowed; the
// original text comes back unchanged and nothing is retried.
func (s *assistantService) PolishDescription(ctx context.Context, description string) string {
	if s.client == nil || len(description) < minDescriptionLen {
		return description
	}

	prompt := fmt.Sprintf(assistantPromptFormat, description)
	polished, err := s.client.GenerateResponse(ctx, prompt, assistantSystemMessage, 0.3)
	if err != nil {
		s.logger.Warn("Description assistant failed, keeping original text", zap.Error(err))
		return description
	}

	if polished == "" {
		return description
	}

	return polished
}

// Ensure assistantService implements AssistantService at compile time.
var _ AssistantService = (*assistantService)(nil)

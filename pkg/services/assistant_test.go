package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockLLMClient captures the prompt and returns a canned response.
type mockLLMClient struct {
	response string
	err      error
	called   bool
	prompt   string
	system   string
}

func (m *mockLLMClient) GenerateResponse(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error) {
	m.called = true
	m.prompt = prompt
	m.system = systemMessage
	return m.response, m.err
}

func (m *mockLLMClient) GetModel() string {
	return "mock-model"
}

func TestPolishDescription_ReturnsPolishedText(t *testing.T) {
	client := &mockLLMClient{response: "Melakukan servis AC pada lantai 3 Gedung A."}
	service := NewAssistantService(client, zap.NewNop())

	got := service.PolishDescription(context.Background(), "servis ac lantai 3")

	assert.True(t, client.called)
	assert.Equal(t, "Melakukan servis AC pada lantai 3 Gedung A.", got)
	assert.Contains(t, client.prompt, "servis ac lantai 3")
	assert.NotEmpty(t, client.system)
}

func TestPolishDescription_NilClientPassesThrough(t *testing.T) {
	service := NewAssistantService(nil, zap.NewNop())

	got := service.PolishDescription(context.Background(), "servis ac lantai 3")
	assert.Equal(t, "servis ac lantai 3", got)
}

func TestPolishDescription_ShortInputNotSent(t *testing.T) {
	client := &mockLLMClient{response: "should not be used"}
	service := NewAssistantService(client, zap.NewNop())

	got := service.PolishDescription(context.Background(), "abcd")

	assert.False(t, client.called)
	assert.Equal(t, "abcd", got)
}

func TestPolishDescription_ErrorPassesThrough(t *testing.T) {
	client := &mockLLMClient{err: errors.New("backend down")}
	service := NewAssistantService(client, zap.NewNop())

	got := service.PolishDescription(context.Background(), "servis ac lantai 3")

	// One attempt, no retry, original text preserved.
	assert.True(t, client.called)
	assert.Equal(t, "servis ac lantai 3", got)
}

func TestPolishDescription_EmptyResponsePassesThrough(t *testing.T) {
	client := &mockLLMClient{response: ""}
	service := NewAssistantService(client, zap.NewNop())

	got := service.PolishDescription(context.Background(), "servis ac lantai 3")
	assert.Equal(t, "servis ac lantai 3", got)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrQueryRequired     = errors.New("query is required")
	ErrModelUnconfigured = errors.New("language model is not configured")
)

// Generator produces a completion for a single prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type ChatReply struct {
	Success  bool
	Response string
}

type ChatService struct {
	generator Generator
	logger    *zap.Logger
}

// NewChatService returns a service that reports ErrModelUnconfigured when
// generator is nil.
func NewChatService(generator Generator, logger *zap.Logger) *ChatService {
	return &ChatService{generator: generator, logger: logger}
}

func (s *ChatService) Configured() bool {
	return s.generator != nil
}

const promptTemplate = `You are a helpful weather assistant. A user is asking about weather information.

Weather Data Summary:
%s

User Question: %s

Please provide a helpful, friendly, and concise response based on the weather data provided.
Focus on being practical and actionable. If the weather data doesn't contain enough information
to answer the question, politely say so.

Keep your response conversational and under 150 words.`

func buildPrompt(query, weatherData string) string {
	return fmt.Sprintf(promptTemplate, weatherData, query)
}

// Reply asks the model about query. A model failure is not an error: the
// reply carries the rule-based answer with Success false.
func (s *ChatService) Reply(ctx context.Context, query, weatherData string) (ChatReply, error) {
	if strings.TrimSpace(query) == "" {
		return ChatReply{}, ErrQueryRequired
	}
	if s.generator == nil {
		s.logger.Warn("Chat requested without a configured model")
		return ChatReply{}, ErrModelUnconfigured
	}

	text, err := s.generator.GenerateContent(ctx, buildPrompt(query, weatherData))
	if err != nil {
		s.logger.Warn("Model call failed, answering with rules",
			zap.Int("query_len", len(query)),
			zap.Error(err))
		return ChatReply{Success: false, Response: Advise(query, weatherData)}, nil
	}

	return ChatReply{Success: true, Response: text}, nil
}

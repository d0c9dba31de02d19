package fallback

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/servicezone/concierge/internal/config"
)

const systemPrompt = "You are the assistant of ServiceZone UAE, a painting services company. " +
	"Answer the customer's question briefly and factually. Stick to painting services, " +
	"site visits and general company information. If you cannot help, suggest typing " +
	"MENU to see the service list. Never invent prices; pricing questions are handled " +
	"by a human estimator."

// Service answers free-form customer questions through an Ark chat model.
// It is the controller's fallback delegate for messages the stage machine
// cannot classify.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the single-turn question answering chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile fallback chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Answer runs one question through the chain. The caller bounds ctx with a
// timeout and maps any error to a fixed apology reply.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{
		"system": systemPrompt,
		"query":  question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run fallback chain: %w", err)
	}

	log.Printf("[fallback] answered question, length=%d", len(response.Content))
	return response.Content, nil
}

package ai

import (
	"PostGenius/internal/config"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Client интерфейс для взаимодействия с AI. Все реализации должны быть взаимозаменяемыми.
// Ответ nil без ошибки: провайдер вернул пустой (null) текст.
type Client interface {
	SendRequest(ctx context.Context, text string, imageURL string) (*string, error)
}

// New выбирает реализацию Client по cfg.AIProvider.
func New(cfg *config.Config, logger *zap.SugaredLogger) (Client, error) {
	switch cfg.AIProvider {
	case config.ProviderOpenAI:
		return NewVisionClient(NewOpenAIClient(cfg.OpenAI), cfg.OpenAI, logger), nil
	case config.ProviderStub:
		return NewStubClient(), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AIProvider)
	}
}

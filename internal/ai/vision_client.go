package ai

import (
	"PostGenius/internal/config"
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// ErrNoChoices модель вернула ответ без вариантов.
var ErrNoChoices = errors.New("openai: no choices in response")

// NewOpenAIClient создаёт клиента OpenAI с ключом из конфигурации.
// Ретраи SDK отключены: на один запрос пользователя приходится один вызов модели.
func NewOpenAIClient(cfg config.OpenAIConfig) *openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	return &client
}

// VisionClient отправляет текст и картинку в OpenAI Chat Completions
type VisionClient struct {
	client      *openai.Client
	model       string
	maxTokens   int64
	temperature float64
	logger      *zap.SugaredLogger
}

func NewVisionClient(client *openai.Client, cfg config.OpenAIConfig, logger *zap.SugaredLogger) *VisionClient {
	return &VisionClient{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// SendRequest отправляет одно пользовательское сообщение (текст + image_url)
// и возвращает текст первого варианта ответа как есть. nil означает, что
// модель прислала content: null.
func (c *VisionClient) SendRequest(ctx context.Context, text string, imageURL string) (*string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(text),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL,
				}),
			}),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	}

	start := time.Now()
	c.logger.Infow("Запрос в OpenAI...", "model", c.model)
	resp, err := c.client.Chat.Completions.New(ctx, params)
	dur := time.Since(start)
	if err != nil {
		// Error пишет граница HTTP, здесь только длительность
		c.logger.Warnw("Ошибка ответа OpenAI", "duration", dur.String(), "error", err)
		return nil, err
	}
	c.logger.Infow("Ответ OpenAI получен", "duration", dur.String(), "choices", len(resp.Choices))

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	msg := resp.Choices[0].Message
	if !msg.JSON.Content.Valid() {
		return nil, nil
	}
	return &msg.Content, nil
}

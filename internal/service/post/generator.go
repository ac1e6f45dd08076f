package post

import (
	"PostGenius/internal/ai"
	"PostGenius/internal/service/image"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrMissingInput = errors.New("post: image and tone are required")
	ErrInvalidTone  = errors.New("post: invalid tone")
)

// UpstreamError ошибка провайдера генерации. Детали идут только в лог.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "post: upstream: " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Request тело POST /api/generate.
type Request struct {
	Image string `json:"image" validate:"required"`
	Tone  string `json:"tone" validate:"required,tone"`
}

// Result тело успешного ответа. Post равен nil, если модель вернула null.
type Result struct {
	Post *string `json:"post"`
}

// ImageProcessor нормализует data URL перед отправкой провайдеру.
type ImageProcessor interface {
	Process(dataURL string) (image.ProcessedImage, error)
}

// Generator валидирует запрос, собирает промпт и вызывает провайдера.
// Состояния между запросами не хранит.
type Generator struct {
	client   ai.Client
	images   ImageProcessor
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewGenerator создаёт сервис генерации. images может быть nil: тогда
// изображение уходит провайдеру как есть.
func NewGenerator(client ai.Client, images ImageProcessor, logger *zap.SugaredLogger) *Generator {
	v := validator.New()
	if err := v.RegisterValidation("tone", func(fl validator.FieldLevel) bool {
		return Tone(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return &Generator{client: client, images: images, validate: v, logger: logger}
}

// Validate проверяет запрос. Отсутствующее поле важнее неизвестного тона.
func (g *Generator) Validate(req Request) (Tone, error) {
	err := g.validate.Struct(req)
	if err == nil {
		return Tone(req.Tone), nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return "", ErrMissingInput
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTone, req.Tone)
}

// Generate выполняет один вызов провайдера и возвращает его текст без изменений.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	tone, err := g.Validate(req)
	if err != nil {
		return Result{}, err
	}
	prompt, err := BuildPrompt(tone)
	if err != nil {
		return Result{}, err
	}

	text, err := g.client.SendRequest(ctx, prompt, g.prepareImage(req.Image))
	if err != nil {
		return Result{}, &UpstreamError{Err: err}
	}
	return Result{Post: text}, nil
}

func (g *Generator) prepareImage(dataURL string) string {
	if g.images == nil {
		return dataURL
	}
	img, err := g.images.Process(dataURL)
	switch {
	case errors.Is(err, image.ErrNotDataURL):
		g.logger.Debugw("Изображение не data URL, отправляем как есть")
		return dataURL
	case err != nil:
		g.logger.Warnw("Не удалось обработать изображение, отправляем как есть", "error", err)
		return dataURL
	}
	if img.Resized {
		g.logger.Infow("Изображение уменьшено",
			"width", img.Width,
			"height", img.Height,
			"bytes", img.SizeBytes,
		)
	}
	return img.DataURL
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Провайдеры генерации
const (
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

type Config struct {
	DebugMode    bool   `env:"DEBUG_MODE"`     // Режим дебага: development-логгер
	BindAddr     string `env:"BIND_ADDR"`      // Адрес HTTP сервера, напр. :8080
	AIProvider   string `env:"AI_PROVIDER"`    // openai|stub
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES"` // Максимальный размер тела запроса /api/generate

	OpenAI OpenAIConfig
	Image  ImageConfig
	Server ServerConfig
}

// OpenAIConfig параметры вызова Chat Completions.
type OpenAIConfig struct {
	APIKey      string  `env:"OPENAI_API_KEY"`     // Читается один раз при старте
	BaseURL     string  `env:"OPENAI_BASE_URL"`    // Пусто: адрес по умолчанию из SDK
	Model       string  `env:"OPENAI_MODEL"`       // Модель с поддержкой изображений
	MaxTokens   int64   `env:"OPENAI_MAX_TOKENS"`  // Лимит токенов ответа
	Temperature float64 `env:"OPENAI_TEMPERATURE"` // Температура сэмплирования
}

// ImageConfig ограничения на изображение, уходящее провайдеру.
type ImageConfig struct {
	MaxWidth     int   `env:"IMAGE_MAX_WIDTH"`
	MaxSizeBytes int   `env:"IMAGE_MAX_SIZE_BYTES"`
	Quality      int   `env:"IMAGE_QUALITY"`
	MaxPixels    int64 `env:"IMAGE_MAX_PIXELS"` // Больше этого по заголовку картинка не декодируется
}

// ServerConfig таймауты http.Server.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:    false,
		BindAddr:     ":8080",
		AIProvider:   ProviderOpenAI,
		MaxBodyBytes: 10 << 20,
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   800,
			Temperature: 0.7,
		},
		Image: ImageConfig{
			MaxWidth:     1280,
			MaxSizeBytes: 1 << 20,
			Quality:      80,
			MaxPixels:    40_000_000,
		},
		Server: ServerConfig{
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			// ответ модели может идти дольше десятка секунд
			WriteTimeout:    120 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// NewConfig загружает конфигурацию приложения из .env, окружения и os.Args.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()
	return Load(flag.CommandLine, os.Args[1:])
}

// Load стартует с дефолтов, перекрывает окружением, затем флагами из args.
// Флаги регистрируются в fs, поэтому тесты могут передать свой FlagSet.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага (development-логгер)")
	fs.StringVar(&cfg.BindAddr, "bind-addr", cfg.BindAddr, "адрес HTTP сервера, напр. :8080")
	fs.StringVar(&cfg.AIProvider, "ai-provider", cfg.AIProvider, "провайдер генерации: openai|stub")
	fs.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "максимальный размер тела запроса, байт")
	fs.StringVar(&cfg.OpenAI.BaseURL, "openai-base-url", cfg.OpenAI.BaseURL, "базовый URL OpenAI API (пусто: по умолчанию)")
	fs.StringVar(&cfg.OpenAI.Model, "openai-model", cfg.OpenAI.Model, "модель OpenAI с поддержкой изображений")
	fs.Int64Var(&cfg.OpenAI.MaxTokens, "openai-max-tokens", cfg.OpenAI.MaxTokens, "лимит токенов ответа")
	fs.Float64Var(&cfg.OpenAI.Temperature, "openai-temperature", cfg.OpenAI.Temperature, "температура сэмплирования 0..2")
	fs.IntVar(&cfg.Image.MaxWidth, "image-max-width", cfg.Image.MaxWidth, "максимальная ширина изображения, px")
	fs.IntVar(&cfg.Image.MaxSizeBytes, "image-max-size-bytes", cfg.Image.MaxSizeBytes, "максимальный размер JPEG после сжатия, байт")
	fs.IntVar(&cfg.Image.Quality, "image-quality", cfg.Image.Quality, "качество JPEG 1..100")
	fs.Int64Var(&cfg.Image.MaxPixels, "image-max-pixels", cfg.Image.MaxPixels, "максимум пикселей (ширина*высота) для декодирования")
	fs.DurationVar(&cfg.Server.WriteTimeout, "server-write-timeout", cfg.Server.WriteTimeout, "таймаут записи ответа, напр. 120s")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	cfg.OpenAI.APIKey = strings.TrimSpace(cfg.OpenAI.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	var errs []error
	switch c.AIProvider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("openai: переменная окружения OPENAI_API_KEY не задана"))
		}
	case ProviderStub:
	default:
		errs = append(errs, fmt.Errorf("неизвестный провайдер %q, ожидается openai|stub", c.AIProvider))
	}
	if c.OpenAI.Model == "" {
		errs = append(errs, errors.New("openai: модель не задана"))
	}
	if c.OpenAI.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("openai: max tokens должен быть > 0, получено %d", c.OpenAI.MaxTokens))
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		errs = append(errs, fmt.Errorf("openai: temperature вне диапазона 0..2: %v", c.OpenAI.Temperature))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max body bytes должен быть > 0, получено %d", c.MaxBodyBytes))
	}
	if c.Image.MaxPixels <= 0 {
		errs = append(errs, fmt.Errorf("image: max pixels должен быть > 0, получено %d", c.Image.MaxPixels))
	}
	if c.BindAddr == "" {
		errs = append(errs, errors.New("bind addr не задан"))
	}
	return errors.Join(errs...)
}

package main

import (
	"PostGenius/internal/ai"
	"PostGenius/internal/config"
	"PostGenius/internal/service/image"
	"PostGenius/internal/service/post"
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Генерирует пост для локальной картинки без запуска сервера:
//
//	vision -image images/1.jpg -tone storytelling
func main() {
	_ = godotenv.Load()

	imagePath := flag.String("image", "images/1.jpg", "путь к изображению")
	tone := flag.String("tone", string(post.ToneProfessional), "тон поста: pro|storytelling|humour")
	timeout := flag.Duration("timeout", 2*time.Minute, "таймаут запроса к модели")
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	imageData, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatalf("failed to read image file: %v", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(*imagePath))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	client, err := ai.New(cfg, sugar)
	if err != nil {
		log.Fatal(err)
	}
	generator := post.NewGenerator(client, image.NewProcessor(cfg.Image), sugar)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := generator.Generate(ctx, post.Request{
		Image: image.FormatDataURL(mimeType, imageData),
		Tone:  *tone,
	})
	if err != nil {
		log.Fatal(err)
	}

	if res.Post == nil {
		log.Fatal("модель вернула пустой ответ")
	}
	fmt.Println(*res.Post)
}

package image

import (
	"PostGenius/internal/config"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	defaultMaxWidth     = 1280
	defaultMaxSizeBytes = 1 * 1024 * 1024
	defaultQuality      = 80
	defaultMaxPixels    = 40_000_000
	minWidth            = 320
)

var (
	// ErrNotDataURL строка не является base64 data URL (например, обычный http URL).
	ErrNotDataURL = errors.New("image: not a base64 data url")
	// ErrTooManyPixels заголовок объявляет больше пикселей, чем разрешено декодировать.
	ErrTooManyPixels = errors.New("image: too many pixels")
)

type ProcessedImage struct {
	DataURL   string
	Width     int
	Height    int
	SizeBytes int
	MimeType  string
	Resized   bool
}

type Processor struct {
	maxWidth    int
	maxSizeByte int
	quality     int
	maxPixels   int64
}

func NewProcessor(cfg config.ImageConfig) *Processor {
	p := &Processor{
		maxWidth:    cfg.MaxWidth,
		maxSizeByte: cfg.MaxSizeBytes,
		quality:     cfg.Quality,
		maxPixels:   cfg.MaxPixels,
	}
	if p.maxWidth <= 0 {
		p.maxWidth = defaultMaxWidth
	}
	if p.maxSizeByte <= 0 {
		p.maxSizeByte = defaultMaxSizeBytes
	}
	if p.quality <= 0 {
		p.quality = defaultQuality
	}
	if p.maxPixels <= 0 {
		p.maxPixels = defaultMaxPixels
	}
	p.quality = min(p.quality, 100)
	return p
}

// ParseDataURL разбирает "data:<mime>;base64,<payload>".
func ParseDataURL(s string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mimeType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("image: decode base64: %w", err)
	}
	if len(data) == 0 {
		return "", nil, errors.New("image: empty payload")
	}
	return mimeType, data, nil
}

// FormatDataURL собирает data URL из mime-типа и байтов.
func FormatDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// Process приводит изображение к ширине не больше maxWidth и размеру не больше
// maxSizeByte. Подходящие JPEG/PNG возвращаются без перекодирования,
// остальное перекодируется в JPEG.
// Размеры сначала читаются из заголовка: растр декодируется только если
// ширина*высота не больше maxPixels.
func (p *Processor) Process(dataURL string) (ProcessedImage, error) {
	mimeType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return ProcessedImage{}, err
	}

	hdr, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("image: decode %s: %w", mimeType, err)
	}
	origWidth, origHeight := hdr.Width, hdr.Height
	if origWidth <= 0 || origHeight <= 0 {
		return ProcessedImage{}, fmt.Errorf("invalid image size: %dx%d", origWidth, origHeight)
	}
	if int64(origWidth)*int64(origHeight) > p.maxPixels {
		return ProcessedImage{}, fmt.Errorf("%w: %dx%d, limit %d", ErrTooManyPixels, origWidth, origHeight, p.maxPixels)
	}

	if (format == "jpeg" || format == "png") && origWidth <= p.maxWidth && len(data) <= p.maxSizeByte {
		return ProcessedImage{
			DataURL:   dataURL,
			Width:     origWidth,
			Height:    origHeight,
			SizeBytes: len(data),
			MimeType:  "image/" + format,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("image: decode %s: %w", mimeType, err)
	}
	// размеры берём из растра: заголовок мог соврать
	origWidth, origHeight = img.Bounds().Dx(), img.Bounds().Dy()
	if origWidth == 0 || origHeight == 0 {
		return ProcessedImage{}, fmt.Errorf("invalid image size: %dx%d", origWidth, origHeight)
	}

	resizedWidth := min(origWidth, p.maxWidth)
	resizedHeight := max(1, origHeight*resizedWidth/origWidth)

	var encoded []byte
	for {
		resized := resize(img, resizedWidth, resizedHeight)
		encoded, err = encodeJPEG(resized, p.quality)
		if err != nil {
			return ProcessedImage{}, err
		}

		if len(encoded) <= p.maxSizeByte {
			break
		}

		if resizedWidth <= minWidth {
			return ProcessedImage{}, fmt.Errorf("image exceeds max size %d bytes even after downscale", p.maxSizeByte)
		}

		resizedWidth = max(1, int(float64(resizedWidth)*0.9))
		resizedHeight = max(1, origHeight*resizedWidth/origWidth)
	}

	return ProcessedImage{
		DataURL:   FormatDataURL("image/jpeg", encoded),
		Width:     resizedWidth,
		Height:    resizedHeight,
		SizeBytes: len(encoded),
		MimeType:  "image/jpeg",
		Resized:   true,
	}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, width int, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(1, width), max(1, height)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime"
	"net/http"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"otomoto_scrooper/logging"
)

const (
	maxImageSize     = 20 * 1024 * 1024 // 20MB
	defaultCacheSize = 128
	webpJPEGQuality  = 85
)

var ErrNoImage = errors.New("listing has no image URL")

// Image is a downloaded picture in a format the PDF writer accepts.
type Image struct {
	Name   string // stable key derived from the content hash
	Type   string // JPG, PNG or GIF
	Data   []byte
	Width  int
	Height int
}

// ImageFetcher downloads listing images and keeps the most recent ones in
// memory, keyed by URL.
type ImageFetcher struct {
	client *resty.Client
	cache  *lru.Cache[string, *Image]
	log    zerolog.Logger
}

func NewImageFetcher(client *resty.Client, cacheSize int) (*ImageFetcher, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, *Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}

	return &ImageFetcher{
		client: client,
		cache:  cache,
		log:    logging.For("media"),
	}, nil
}

func (f *ImageFetcher) Fetch(ctx context.Context, imageURL string) (*Image, error) {
	if imageURL == "" {
		return nil, ErrNoImage
	}
	if img, ok := f.cache.Get(imageURL); ok {
		return img, nil
	}

	resp, err := f.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("download status: %d", resp.StatusCode())
	}

	data := resp.Body()
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image too large: %d bytes", len(data))
	}

	img, err := Prepare(data, resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", imageURL, err)
	}

	f.cache.Add(imageURL, img)
	f.log.Debug().Str("url", imageURL).Int("bytes", len(img.Data)).Msg("Image ready")
	return img, nil
}

// Prepare identifies the image format and converts webp to JPEG.
func Prepare(data []byte, contentType string) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image (%s): %w", detectType(data, contentType), err)
	}

	img := &Image{
		Name:   contentName(data),
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	switch format {
	case "jpeg":
		img.Type = "JPG"
	case "png":
		img.Type = "PNG"
	case "gif":
		img.Type = "GIF"
	case "webp":
		converted, err := webpToJPEG(data)
		if err != nil {
			return nil, err
		}
		img.Type = "JPG"
		img.Data = converted
	default:
		return nil, fmt.Errorf("unsupported image format %s", format)
	}

	return img, nil
}

func webpToJPEG(data []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode webp: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, decoded, &jpeg.Options{Quality: webpJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func contentName(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

func detectType(data []byte, contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return http.DetectContentType(data)
}

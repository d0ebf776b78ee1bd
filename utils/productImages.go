package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/shopping-mall/mall-api/apperrors"
)

const (
	productImageWidth   = 800
	productImageQuality = 80

	// maxImagePixels bounds the decoded size. A small file can declare huge
	// dimensions, and Decode allocates for all of them.
	maxImagePixels = 40_000_000
)

var ErrImageTooLarge = errors.New("image dimensions are too large")

type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// ImageStore resizes product photos and puts them in an S3 bucket.
type ImageStore struct {
	uploader objectUploader
	bucket   string
}

// NewImageStore loads the default AWS credential chain. An empty bucket
// yields a nil store, which callers treat as "uploads disabled".
func NewImageStore(ctx context.Context, bucket string) (*ImageStore, error) {
	if bucket == "" {
		return nil, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &ImageStore{uploader: manager.NewUploader(client), bucket: bucket}, nil
}

// Upload stores the image under products/ and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	body, err := ResizeProductImage(r)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindValidation, "unsupported image", err)
	}

	key := fmt.Sprintf("products/%s.jpg", uuid.NewString())
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", apperrors.Unavailable("failed to upload image", err)
	}
	return result.Location, nil
}

// ResizeProductImage decodes a PNG or JPEG, narrows it to the catalog width
// when it is wider, and re-encodes it as JPEG.
func ResizeProductImage(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	if img.Bounds().Dx() > productImageWidth {
		img = resize.Resize(productImageWidth, 0, img, resize.Lanczos3)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: productImageQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Bytes(), nil
}

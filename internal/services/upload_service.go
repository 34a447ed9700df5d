package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// MaxUploadBatch is the most files accepted by one multi-file upload.
const MaxUploadBatch = 5

// ImageHost stores an image and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, name string, data io.Reader) (string, error)
}

// UploadFile is one image received from a client.
type UploadFile struct {
	Name string
	Data io.Reader
}

// UploadService stores product images on the image host.
type UploadService struct {
	host   ImageHost
	logger *slog.Logger
}

// NewUploadService creates a new UploadService.
func NewUploadService(host ImageHost, logger *slog.Logger) *UploadService {
	return &UploadService{host: host, logger: logger}
}

// UploadOne stores a single image.
func (s *UploadService) UploadOne(ctx context.Context, f UploadFile) (string, error) {
	url, err := s.host.Upload(ctx, f.Name, f.Data)
	if err != nil {
		s.logger.ErrorContext(ctx, "image upload failed", "file", f.Name, "error", err)
		return "", fmt.Errorf("%w: uploading %s: %v", ErrUpstream, f.Name, err)
	}
	return url, nil
}

// UploadMany stores up to MaxUploadBatch images concurrently. URLs are
// returned in input order. Images already stored when one fails are kept.
func (s *UploadService) UploadMany(ctx context.Context, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files", ErrValidation)
	}
	if len(files) > MaxUploadBatch {
		return nil, fmt.Errorf("%w: at most %d files per upload", ErrValidation, MaxUploadBatch)
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := s.UploadOne(gctx, f)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

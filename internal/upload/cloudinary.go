// Package upload stores product images on the hosted image CDN.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned by Unconfigured for every upload.
var ErrNotConfigured = errors.New("image host credentials are not configured")

// eagerVariants are the card and detail sizes generated at upload time.
const eagerVariants = "w_300,h_300,c_fill|w_600,h_600,c_fill"

// Cloudinary uploads images into a single folder of a Cloudinary account.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: folder}, nil
}

// Upload stores data and returns its https URL.
func (c *Cloudinary) Upload(ctx context.Context, name string, data io.Reader) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		Folder:         c.folder,
		PublicID:       publicID(name),
		UniqueFilename: api.Bool(true),
		ResourceType:   "auto",
		Eager:          eagerVariants,
		EagerAsync:     api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// publicID derives an asset name from the client file name.
func publicID(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, base)
	return base
}

// Unconfigured rejects every upload. Used when no credentials are set.
type Unconfigured struct{}

func (Unconfigured) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}

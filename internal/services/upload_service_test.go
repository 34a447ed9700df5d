package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/logging"
	"storefront/internal/services"
)

func files(names ...string) []services.UploadFile {
	out := make([]services.UploadFile, len(names))
	for i, n := range names {
		out[i] = services.UploadFile{Name: n, Data: strings.NewReader("img:" + n)}
	}
	return out
}

func TestUploadService_UploadOne(t *testing.T) {
	host := new(MockImageHost)
	service := services.NewUploadService(host, logging.Discard())

	host.On("Upload", mock.Anything, "a.jpg", mock.Anything).Return("https://cdn/a.jpg", nil).Once()
	url, err := service.UploadOne(context.Background(), files("a.jpg")[0])
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/a.jpg", url)

	host.On("Upload", mock.Anything, "b.jpg", mock.Anything).Return("", errors.New("timeout")).Once()
	_, err = service.UploadOne(context.Background(), files("b.jpg")[0])
	assert.ErrorIs(t, err, services.ErrUpstream)
	host.AssertExpectations(t)
}

func TestUploadService_UploadManyKeepsOrder(t *testing.T) {
	host := new(MockImageHost)
	service := services.NewUploadService(host, logging.Discard())

	names := []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"}
	for _, n := range names {
		host.On("Upload", mock.Anything, n, mock.Anything).Return(fmt.Sprintf("https://cdn/%s", n), nil).Once()
	}

	urls, err := service.UploadMany(context.Background(), files(names...))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn/1.jpg", "https://cdn/2.jpg", "https://cdn/3.jpg", "https://cdn/4.jpg", "https://cdn/5.jpg",
	}, urls)
	host.AssertExpectations(t)
}

func TestUploadService_UploadManyLimits(t *testing.T) {
	service := services.NewUploadService(new(MockImageHost), logging.Discard())

	_, err := service.UploadMany(context.Background(), nil)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.UploadMany(context.Background(), files("1", "2", "3", "4", "5", "6"))
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestUploadService_UploadManyFailure(t *testing.T) {
	host := new(MockImageHost)
	service := services.NewUploadService(host, logging.Discard())

	host.On("Upload", mock.Anything, "ok.jpg", mock.Anything).Return("https://cdn/ok.jpg", nil).Maybe()
	host.On("Upload", mock.Anything, "bad.jpg", mock.Anything).Return("", errors.New("quota exceeded")).Once()

	urls, err := service.UploadMany(context.Background(), files("ok.jpg", "bad.jpg"))
	assert.ErrorIs(t, err, services.ErrUpstream)
	assert.Nil(t, urls)
}

package upload

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicID(t *testing.T) {
	cases := map[string]string{
		"summer dress.jpg":      "summer_dress",
		"../../etc/passwd":      "passwd",
		"IMG-2024_05.final.png": "IMG-2024_05final",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, publicID(in), in)
	}
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured{}.Upload(context.Background(), "a.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewCloudinary(t *testing.T) {
	host, err := NewCloudinary("demo", "key", "secret", "fashion-store")
	require.NoError(t, err)
	assert.Equal(t, "fashion-store", host.folder)
	assert.True(t, host.cld.Config.URL.Secure)
}

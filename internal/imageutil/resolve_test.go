package imageutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/imageutil"
)

const cdnURL = "https://res.cloudinary.com/demo/image/upload/v1712/fashion-store/coat.jpg"

func TestResolve_Placeholder(t *testing.T) {
	assert.Equal(t, imageutil.Placeholder, imageutil.Resolve(nil, 0, imageutil.Options{}))
	assert.Equal(t, imageutil.Placeholder, imageutil.Resolve([]string{}, 0, imageutil.Options{}))
	assert.Equal(t, imageutil.Placeholder, imageutil.Resolve([]string{"/a.jpg"}, 3, imageutil.Options{}))
	assert.Equal(t, imageutil.Placeholder, imageutil.Resolve([]string{"/a.jpg", ""}, 1, imageutil.Options{}))
	assert.Equal(t, imageutil.Placeholder, imageutil.ResolveURL("", imageutil.Options{}))
}

func TestResolve_NonCDNUnchanged(t *testing.T) {
	ref := "https://images.example.com/upload/coat.jpg"
	assert.Equal(t, ref, imageutil.Resolve([]string{ref}, 0, imageutil.Options{Context: imageutil.Detail}))
	assert.Equal(t, "/images/local.png", imageutil.ResolveURL("/images/local.png", imageutil.Options{}))
}

func TestResolve_CDNContexts(t *testing.T) {
	cases := map[imageutil.Context]string{
		imageutil.Thumbnail: "w_80,h_80,c_fill,q_auto,f_auto",
		imageutil.Card:      "w_300,h_300,c_fill,q_auto,f_auto",
		imageutil.Detail:    "w_600,h_600,c_fill,q_auto,f_auto",
		imageutil.Banner:    "w_1200,h_500,c_fill,q_auto,f_auto",
	}
	for ctx, params := range cases {
		got := imageutil.ResolveURL(cdnURL, imageutil.Options{Context: ctx})
		assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/"+params+"/v1712/fashion-store/coat.jpg", got, ctx)
	}
}

func TestResolve_DefaultContextIsCard(t *testing.T) {
	got := imageutil.Resolve([]string{cdnURL}, 0, imageutil.Options{})
	assert.Contains(t, got, "/upload/w_300,h_300,c_fill,q_auto,f_auto/")
}

func TestResolve_OverridesPerCall(t *testing.T) {
	got := imageutil.ResolveURL(cdnURL, imageutil.Options{Context: imageutil.Thumbnail, Width: 120, Crop: "thumb"})
	assert.Contains(t, got, "/upload/w_120,h_80,c_thumb,q_auto,f_auto/")
}

func TestResolve_CDNWithoutUploadSegment(t *testing.T) {
	ref := "https://res.cloudinary.com/demo/image/fetch/coat.jpg"
	assert.Equal(t, ref, imageutil.ResolveURL(ref, imageutil.Options{Context: imageutil.Card}))
}

func TestResolve_Idempotent(t *testing.T) {
	opts := imageutil.Options{Context: imageutil.Detail}
	assert.Equal(t, imageutil.ResolveURL(cdnURL, opts), imageutil.ResolveURL(cdnURL, opts))
}

func TestVariants(t *testing.T) {
	got := imageutil.Variants([]string{cdnURL, "", "/local.png"}, imageutil.Card, imageutil.Detail)
	assert.Len(t, got, 4)
	assert.Contains(t, got[0], "w_300")
	assert.Contains(t, got[1], "w_600")
	assert.Equal(t, "/local.png", got[2])
}

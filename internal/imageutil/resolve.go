// Package imageutil maps raw product image references to displayable URLs,
// adding hosted-CDN transformations where the URL allows it.
package imageutil

import (
	"strconv"
	"strings"
)

// Placeholder is returned whenever no usable image reference exists.
const Placeholder = "/placeholder.svg"

const (
	cdnHost      = "cloudinary.com"
	uploadMarker = "/upload/"
)

// Context selects a default transformation.
type Context string

const (
	Thumbnail Context = "thumbnail"
	Card      Context = "card"
	Detail    Context = "detail"
	Banner    Context = "banner"
)

// Options describes a CDN transformation. Zero fields fall back to the
// defaults of the selected Context (Card when unset).
type Options struct {
	Context Context
	Width   int
	Height  int
	Crop    string
	Quality string
	Format  string
}

var defaults = map[Context]Options{
	Thumbnail: {Width: 80, Height: 80, Crop: "fill", Quality: "auto", Format: "auto"},
	Card:      {Width: 300, Height: 300, Crop: "fill", Quality: "auto", Format: "auto"},
	Detail:    {Width: 600, Height: 600, Crop: "fill", Quality: "auto", Format: "auto"},
	Banner:    {Width: 1200, Height: 500, Crop: "fill", Quality: "auto", Format: "auto"},
}

// Resolve picks images[index] and returns its displayable URL. Missing or
// empty entries resolve to Placeholder.
func Resolve(images []string, index int, opts Options) string {
	if index < 0 || index >= len(images) || images[index] == "" {
		return Placeholder
	}
	return ResolveURL(images[index], opts)
}

// ResolveURL resolves a single image reference.
func ResolveURL(ref string, opts Options) string {
	if ref == "" {
		return Placeholder
	}
	if IsCDNURL(ref) {
		return Transform(ref, opts)
	}
	return ref
}

func IsCDNURL(ref string) bool {
	return strings.Contains(ref, cdnHost)
}

// Transform injects transformation parameters right after the CDN's
// "/upload/" path segment. URLs without that segment are returned unchanged.
func Transform(ref string, opts Options) string {
	if !IsCDNURL(ref) {
		return ref
	}
	idx := strings.Index(ref, uploadMarker)
	if idx == -1 {
		return ref
	}
	params := opts.merged().params()
	if params == "" {
		return ref
	}
	cut := idx + len(uploadMarker)
	return ref[:cut] + params + "/" + ref[cut:]
}

func (o Options) merged() Options {
	ctx := o.Context
	if ctx == "" {
		ctx = Card
	}
	m, ok := defaults[ctx]
	if !ok {
		m = Options{}
	}
	if o.Width != 0 {
		m.Width = o.Width
	}
	if o.Height != 0 {
		m.Height = o.Height
	}
	if o.Crop != "" {
		m.Crop = o.Crop
	}
	if o.Quality != "" {
		m.Quality = o.Quality
	}
	if o.Format != "" {
		m.Format = o.Format
	}
	return m
}

func (o Options) params() string {
	var parts []string
	if o.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(o.Width))
	}
	if o.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(o.Height))
	}
	if o.Crop != "" {
		parts = append(parts, "c_"+o.Crop)
	}
	if o.Quality != "" {
		parts = append(parts, "q_"+o.Quality)
	}
	if o.Format != "" {
		parts = append(parts, "f_"+o.Format)
	}
	return strings.Join(parts, ",")
}

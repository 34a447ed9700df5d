package imageutil

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Preloader warms an image cache. Implementations never block the caller
// and never report failures.
type Preloader interface {
	Preload(urls ...string)
}

// HTTPPreloader fetches each URL in its own goroutine so the CDN builds and
// caches the requested variant before the first visitor asks for it.
type HTTPPreloader struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewHTTPPreloader(timeout time.Duration, logger *slog.Logger) *HTTPPreloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPPreloader{Timeout: timeout, Logger: logger}
}

func (p *HTTPPreloader) Preload(urls ...string) {
	for _, u := range urls {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		go p.fetch(u)
	}
}

func (p *HTTPPreloader) fetch(url string) {
	agent := fiber.Get(url)
	if p.Timeout > 0 {
		agent.Timeout(p.Timeout)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		p.Logger.Debug("image preload skipped", "url", url, "error", err)
		return
	}
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		p.Logger.Debug("image preload failed", "url", url, "error", errs[0])
		return
	}
	p.Logger.Debug("image preloaded", "url", url, "status", code)
}

// NopPreloader discards every request.
type NopPreloader struct{}

func (NopPreloader) Preload(...string) {}

// Variants resolves every image of a product for each of the given contexts.
func Variants(images []string, contexts ...Context) []string {
	var out []string
	for i := range images {
		for _, ctx := range contexts {
			u := Resolve(images, i, Options{Context: ctx})
			if u != Placeholder {
				out = append(out, u)
			}
		}
	}
	return out
}

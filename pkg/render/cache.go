package render

import (
	"context"
	"errors"
	"sync"

	"github.com/gogpu/gg"
	"github.com/sirupsen/logrus"
)

// ErrNoImage is returned by Preload for an empty image reference.
var ErrNoImage = errors.New("no image reference")

// ImageCache holds the most recently loaded template image.
//
// Get never blocks: a miss starts a background load and returns nothing,
// so the frame is drawn without the image. When the load finishes, the
// result is kept only if its reference is still the one most recently
// asked for; OnLoad is then called so the host can redraw. A failed
// reference is not retried until a different one is requested or
// Invalidate is called.
type ImageCache struct {
	loader Loader

	// OnLoad is called from the loading goroutine after a successful,
	// non-stale load. Hosts should hand the redraw back to their UI loop.
	OnLoad func(ref string)

	mu      sync.Mutex
	ref     string
	img     *gg.ImageBuf
	wanted  string
	pending map[string]bool
	failed  string
}

// NewImageCache returns an empty cache backed by loader.
func NewImageCache(loader Loader) *ImageCache {
	return &ImageCache{
		loader:  loader,
		pending: make(map[string]bool),
	}
}

// Get returns the cached image for ref if it is loaded. Otherwise it
// starts a load (unless one is already running or ref last failed) and
// returns false.
func (c *ImageCache) Get(ref string) (*gg.ImageBuf, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wanted = ref
	if ref == "" {
		return nil, false
	}
	if c.ref == ref && c.img != nil {
		return c.img, true
	}
	if c.pending[ref] || c.failed == ref {
		return nil, false
	}
	c.pending[ref] = true
	go c.load(ref)
	return nil, false
}

// Pending reports whether a load for ref is in flight.
func (c *ImageCache) Pending(ref string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[ref]
}

// Invalidate drops the cached image and any failure record.
func (c *ImageCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ref, c.img, c.failed = "", nil, ""
}

// Preload loads ref synchronously and caches it. Used by batch exports
// that must not render a frame without the image.
func (c *ImageCache) Preload(ctx context.Context, ref string) error {
	if ref == "" {
		return ErrNoImage
	}
	img, err := c.loader.Load(ctx, ref)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.wanted = ref
	if err != nil {
		c.ref, c.img, c.failed = "", nil, ref
		return err
	}
	c.ref, c.img, c.failed = ref, gg.ImageBufFromImage(img), ""
	return nil
}

func (c *ImageCache) load(ref string) {
	log := logrus.WithField("image", ref)
	img, err := c.loader.Load(context.Background(), ref)

	c.mu.Lock()
	delete(c.pending, ref)
	if ref != c.wanted {
		c.mu.Unlock()
		log.Debug("Discarding stale template image")
		return
	}
	if err != nil {
		c.ref, c.img, c.failed = "", nil, ref
		c.mu.Unlock()
		log.WithError(err).Warn("Template image failed to load")
		return
	}
	c.ref, c.img, c.failed = ref, gg.ImageBufFromImage(img), ""
	onLoad := c.OnLoad
	c.mu.Unlock()

	log.Debug("Template image loaded")
	if onLoad != nil {
		onLoad(ref)
	}
}

package render

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Loader fetches and decodes a template image by reference.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, ref string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}

// FileLoader reads images from disk. Relative references resolve
// against Dir.
type FileLoader struct {
	Dir string
}

// Load opens and decodes ref.
func (l FileLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	path := strings.TrimPrefix(ref, "file://")
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// HTTPLoader fetches images over http(s).
type HTTPLoader struct {
	Client *http.Client
}

// NewHTTPLoader returns a loader whose requests time out after timeout.
func NewHTTPLoader(timeout time.Duration) HTTPLoader {
	return HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

// Load downloads and decodes ref.
func (l HTTPLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", ref, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

// SchemeLoader sends http(s) references to HTTP and everything else to
// Files.
type SchemeLoader struct {
	Files FileLoader
	HTTP  HTTPLoader
}

// Load dispatches on the reference's scheme.
func (l SchemeLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.HTTP.Load(ctx, ref)
	}
	return l.Files.Load(ctx, ref)
}

package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func tinyImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

func waitIdle(t *testing.T, c *ImageCache, ref string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for c.Pending(ref) {
		if time.Now().After(deadline) {
			t.Fatalf("Load of %q did not finish", ref)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCacheDiscardsStaleLoad(t *testing.T) {
	release := map[string]chan struct{}{
		"a": make(chan struct{}),
		"b": make(chan struct{}),
	}
	cache := NewImageCache(LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		<-release[ref]
		return tinyImage(), nil
	}))
	loaded := make(chan string, 2)
	cache.OnLoad = func(ref string) { loaded <- ref }

	if _, ok := cache.Get("a"); ok {
		t.Fatal("Expected miss on first Get")
	}
	cache.Get("b")

	close(release["a"])
	waitIdle(t, cache, "a")
	cache.mu.Lock()
	got := cache.ref
	cache.mu.Unlock()
	if got != "" {
		t.Errorf("Stale load of a was stored as %q", got)
	}

	close(release["b"])
	select {
	case ref := <-loaded:
		if ref != "b" {
			t.Errorf("Expected OnLoad for b, got %q", ref)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnLoad was not called")
	}
	if _, ok := cache.Get("b"); !ok {
		t.Error("Expected hit for b after load")
	}
	if len(loaded) != 0 {
		t.Errorf("Unexpected extra OnLoad for %q", <-loaded)
	}
}

func TestCacheFailureNotRetried(t *testing.T) {
	var calls int32
	cache := NewImageCache(LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("boom")
	}))

	cache.Get("bad")
	waitIdle(t, cache, "bad")
	if _, ok := cache.Get("bad"); ok {
		t.Error("Expected miss for failed reference")
	}
	waitIdle(t, cache, "bad")
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected 1 load attempt, got %d", n)
	}

	cache.Invalidate()
	cache.Get("bad")
	waitIdle(t, cache, "bad")
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("Expected retry after Invalidate, got %d attempts", n)
	}
}

func TestCacheFailureClearsPrevious(t *testing.T) {
	cache := NewImageCache(LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		if ref == "bad" {
			return nil, errors.New("boom")
		}
		return tinyImage(), nil
	}))
	if err := cache.Preload(context.Background(), "good"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Preload(context.Background(), "bad"); err == nil {
		t.Error("Expected Preload error")
	}
	if _, ok := cache.Get("good"); ok {
		t.Error("Failed load should clear the cached image")
	}
}

func TestPreloadEmptyRef(t *testing.T) {
	cache := NewImageCache(LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		return tinyImage(), nil
	}))
	if err := cache.Preload(context.Background(), ""); !errors.Is(err, ErrNoImage) {
		t.Errorf("Expected ErrNoImage, got %v", err)
	}
	if _, ok := cache.Get(""); ok {
		t.Error("Expected miss for empty reference")
	}
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, tinyImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "front.png"), encodePNG(t), 0644); err != nil {
		t.Fatal(err)
	}
	l := FileLoader{Dir: dir}

	for _, ref := range []string{"front.png", "file://front.png", filepath.Join(dir, "front.png")} {
		img, err := l.Load(context.Background(), ref)
		if err != nil {
			t.Errorf("Load(%q) failed: %v", ref, err)
			continue
		}
		if img.Bounds().Dx() != 4 {
			t.Errorf("Load(%q): expected width 4, got %d", ref, img.Bounds().Dx())
		}
	}

	if _, err := l.Load(context.Background(), "missing.png"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestHTTPLoader(t *testing.T) {
	data := encodePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/front.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	l := SchemeLoader{HTTP: NewHTTPLoader(time.Second)}
	if _, err := l.Load(context.Background(), srv.URL+"/front.png"); err != nil {
		t.Errorf("Load failed: %v", err)
	}
	if _, err := l.Load(context.Background(), srv.URL+"/back.png"); err == nil {
		t.Error("Expected error for 404")
	}
}

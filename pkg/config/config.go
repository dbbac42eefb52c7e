// Package config holds editing-session settings shared by the hosts.
//
// Settings are layered: defaults, then the ~/.areaedit file, then a .env
// file in the working directory, then AREAEDIT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ha1tch/printarea/pkg/geom"
)

// Config holds session settings. The surface size is fixed for a session.
type Config struct {
	SurfaceWidth    int
	SurfaceHeight   int
	GridSpacing     int
	HandleTolerance int
	LogLevel        string
	ImageDir        string        // base directory for relative template images
	LastFile        string        // last product file opened by the editor
	HTTPTimeout     time.Duration // timeout for http(s) template images
}

// Default returns the built-in configuration.
func Default() Config {
	cwd, _ := os.Getwd()
	return Config{
		SurfaceWidth:    600,
		SurfaceHeight:   600,
		GridSpacing:     20,
		HandleTolerance: geom.HandleTolerance,
		LogLevel:        "info",
		ImageDir:        cwd,
		HTTPTimeout:     10 * time.Second,
	}
}

// Bounds returns the logical surface size.
func (c Config) Bounds() geom.Bounds {
	return geom.Bounds{Width: c.SurfaceWidth, Height: c.SurfaceHeight}
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Path returns the path of the settings file.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".areaedit"
	}
	return filepath.Join(home, ".areaedit")
}

// Load builds the layered configuration. Missing files are not errors.
func Load() Config {
	cfg := Default()
	if data, err := os.ReadFile(Path()); err == nil {
		cfg.apply(parseLines(string(data)))
	}

	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("Ignoring unreadable .env file")
	}

	env := make(map[string]string)
	for _, key := range keys {
		if v, ok := os.LookupEnv("AREAEDIT_" + strings.ToUpper(key)); ok {
			env[key] = v
		}
	}
	cfg.apply(env)
	return cfg
}

// Save writes the settings file.
func Save(cfg Config) error {
	content := fmt.Sprintf("# areaedit configuration\n"+
		"surface_width = %d\nsurface_height = %d\ngrid_spacing = %d\nhandle_tolerance = %d\n"+
		"log_level = %q\nimage_dir = %q\nlast_file = %q\nhttp_timeout = %q\n",
		cfg.SurfaceWidth, cfg.SurfaceHeight, cfg.GridSpacing, cfg.HandleTolerance,
		cfg.LogLevel, cfg.ImageDir, cfg.LastFile, cfg.HTTPTimeout.String())
	return os.WriteFile(Path(), []byte(content), 0644)
}

var keys = []string{
	"surface_width", "surface_height", "grid_spacing", "handle_tolerance",
	"log_level", "image_dir", "last_file", "http_timeout",
}

// parseLines reads simple `key = value` lines; values may be quoted.
func parseLines(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), "\"")
		out[key] = val
	}
	return out
}

// apply overrides fields from a key/value map. Invalid values are ignored.
func (c *Config) apply(values map[string]string) {
	for key, val := range values {
		switch key {
		case "surface_width":
			if n, err := strconv.Atoi(val); err == nil && n >= geom.MinSize {
				c.SurfaceWidth = n
			}
		case "surface_height":
			if n, err := strconv.Atoi(val); err == nil && n >= geom.MinSize {
				c.SurfaceHeight = n
			}
		case "grid_spacing":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				c.GridSpacing = n
			}
		case "handle_tolerance":
			// windows of adjacent handles on a 40x40 area must stay apart
			if n, err := strconv.Atoi(val); err == nil && n >= 0 && n < geom.MinSize/2 {
				c.HandleTolerance = n
			}
		case "log_level":
			if _, err := logrus.ParseLevel(val); err == nil {
				c.LogLevel = val
			}
		case "image_dir":
			if val != "" {
				c.ImageDir = val
			}
		case "last_file":
			c.LastFile = val
		case "http_timeout":
			if d, err := time.ParseDuration(val); err == nil && d > 0 {
				c.HTTPTimeout = d
			}
		}
	}
}

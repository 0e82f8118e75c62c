// Package assets resolves asset references from the scene definition to
// local files. A reference is either a path relative to one of the base
// directories or an http(s) URL that is downloaded into the cache once.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scene-demo/internal/download"
)

// ErrNotFound is returned when a relative reference exists under no base directory.
var ErrNotFound = errors.New("asset not found")

// DefaultBaseDirs finds assets whether the binary runs from the repo root or cmd/demo.
var DefaultBaseDirs = []string{"assets", "../../assets"}

// Fetcher downloads a URL into a directory and returns the saved path.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, destDir string) (string, error)
}

// Resolver maps references to local paths. It is not safe for concurrent use.
type Resolver struct {
	BaseDirs []string
	CacheDir string
	Fetcher  Fetcher

	resolved map[string]string
}

// NewResolver returns a resolver over baseDirs (DefaultBaseDirs when empty)
// caching downloads in cacheDir.
func NewResolver(baseDirs []string, cacheDir string) *Resolver {
	if len(baseDirs) == 0 {
		baseDirs = DefaultBaseDirs
	}
	if cacheDir == "" {
		cacheDir = filepath.Join("cache", "assets")
	}
	return &Resolver{
		BaseDirs: baseDirs,
		CacheDir: cacheDir,
		Fetcher:  &download.Client{},
		resolved: make(map[string]string),
	}
}

// IsURL reports whether ref is an http or https URL.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Resolve returns a local path for ref. Absolute paths are returned when they
// exist. URLs already present in the cache are not fetched again.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("assets: empty reference")
	}
	if p, ok := r.resolved[ref]; ok {
		return p, nil
	}
	p, err := r.resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	r.resolved[ref] = p
	return p, nil
}

func (r *Resolver) resolve(ctx context.Context, ref string) (string, error) {
	if IsURL(ref) {
		cached := filepath.Join(r.CacheDir, download.FileName(ref, "", ""))
		if fileExists(cached) {
			return cached, nil
		}
		p, err := r.Fetcher.Fetch(ctx, ref, r.CacheDir)
		if err != nil {
			return "", fmt.Errorf("assets: %w", err)
		}
		return p, nil
	}
	if filepath.IsAbs(ref) {
		if fileExists(ref) {
			return ref, nil
		}
		return "", fmt.Errorf("assets: %w: %s", ErrNotFound, ref)
	}
	rel := filepath.FromSlash(strings.TrimPrefix(ref, "assets/"))
	for _, base := range r.BaseDirs {
		p := filepath.Join(base, rel)
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("assets: %w: %s (searched %s)", ErrNotFound, ref, strings.Join(r.BaseDirs, ", "))
}

// ReadFile resolves ref and returns its contents.
func (r *Resolver) ReadFile(ctx context.Context, ref string) ([]byte, error) {
	p, err := r.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return data, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

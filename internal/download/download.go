// Package download fetches remote scene assets (textures, cubemap faces,
// models, shaders) into a local cache directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

const defaultUserAgent = "scene-demo/1.0"

// DefaultTimeout bounds a single download when the caller's client has none.
const DefaultTimeout = 60 * time.Second

// Client downloads files over HTTP. The zero value uses a client with DefaultTimeout.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

func (c *Client) httpClient() *http.Client {
	if c != nil && c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (c *Client) userAgent() string {
	if c != nil && c.UserAgent != "" {
		return c.UserAgent
	}
	return defaultUserAgent
}

// Download fetches rawURL with a default client. See Client.Fetch.
func Download(ctx context.Context, rawURL, destDir string) (string, error) {
	var c Client
	return c.Fetch(ctx, rawURL, destDir)
}

// Fetch downloads rawURL into destDir and returns the saved path. The file name
// comes from Content-Disposition or the URL path; the extension from the URL
// or Content-Type. A partial download never appears under the final name.
func (c *Client) Fetch(ctx context.Context, rawURL, destDir string) (savedPath string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", rawURL, resp.StatusCode)
	}

	name := FileName(rawURL, resp.Header.Get("Content-Disposition"), resp.Header.Get("Content-Type"))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	tmp, err := os.CreateTemp(destDir, ".part-*")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = io.Copy(tmp, resp.Body); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath = filepath.Join(destDir, name)
	if err = os.Rename(tmp.Name(), savedPath); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

// FileName picks the local name for a download. Exported for the asset cache,
// which needs the name before deciding whether to fetch.
func FileName(rawURL, contentDisposition, contentType string) string {
	cdName := filenameFromContentDisposition(contentDisposition)
	ext := extensionFromURL(rawURL)
	if ext == "" {
		ext = knownExt(path.Ext(cdName))
	}
	if ext == "" {
		ext = extensionFromContentType(contentType)
	}
	if ext == "" {
		ext = ".bin"
	}
	name := strings.TrimSuffix(cdName, path.Ext(cdName))
	if name == "" {
		name = filenameFromURL(rawURL)
	}
	name = sanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		if u, err := url.PathUnescape(strings.Trim(s, "\"")); err == nil {
			s = u
		}
		return s
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf"):
		return ".gltf"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "bmp"):
		return ".bmp"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "yaml"):
		return ".yaml"
	}
	return ""
}

// knownExts are kept from the URL as-is.
var knownExts = []string{
	".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif",
	".glb", ".gltf", ".obj",
	".vs", ".fs", ".glsl",
	".yaml", ".yml",
}

func extensionFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return knownExt(path.Ext(p))
}

func knownExt(ext string) string {
	ext = strings.ToLower(ext)
	if slices.Contains(knownExts, ext) {
		return ext
	}
	return ""
}

func filenameFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, ".")
	if name == "" {
		return "download"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}

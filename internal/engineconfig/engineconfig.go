// Package engineconfig holds the demo's persisted preferences (window,
// overlays, scene file, asset locations) and their environment overrides.
package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EngineConfigPath is the path to the config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// EnvPrefix starts every environment override, e.g. DEMO_WIDTH.
const EnvPrefix = "DEMO_"

// EnginePrefs holds host preferences. Persisted across runs; live parameter
// values are not stored here.
type EnginePrefs struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Fullscreen   bool     `json:"fullscreen"`
	TargetFPS    int      `json:"target_fps"`
	Title        string   `json:"title"`
	ShowFPS      bool     `json:"show_fps"`
	ShowMemAlloc bool     `json:"show_memalloc"`
	ShowLoop     bool     `json:"show_loop"`
	ShowPanel    bool     `json:"show_panel"`
	GridVisible  bool     `json:"grid_visible"`
	ScenePath    string   `json:"scene_path,omitempty"`
	StrictParams bool     `json:"strict_params"`
	AssetDirs    []string `json:"asset_dirs,omitempty"`
	CacheDir     string   `json:"cache_dir"`
	LogPath      string   `json:"log_path"`
	// Font is a font file or family name searched under the font dirs; empty uses raylib's default.
	Font string `json:"font,omitempty"`
	// StylePath replaces the built-in panel stylesheet when set.
	StylePath string `json:"style_path,omitempty"`
}

// Default returns default preferences: a 1280×720 window at 60 FPS with the
// panel and grid shown and the embedded scene.
func Default() EnginePrefs {
	return EnginePrefs{
		Width:       1280,
		Height:      720,
		TargetFPS:   60,
		Title:       "scene demo",
		ShowPanel:   true,
		GridVisible: true,
		CacheDir:    "cache/assets",
		LogPath:     "logs/demo.txt",
	}
}

// LoadFrom reads preferences from path over Default(). A missing file yields
// Default() and no error; an invalid file yields Default() and the decode error.
func LoadFrom(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("engineconfig: %w", err)
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	return p, nil
}

// SaveTo writes preferences to path, creating its directory if needed.
func SaveTo(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("engineconfig: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("engineconfig: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from DEMO_* variables found by lookup (usually
// os.LookupEnv). Malformed values are reported and leave the field unchanged.
func (p *EnginePrefs) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []string
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok
	}
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				errs = append(errs, fmt.Sprintf("%s%s=%q", EnvPrefix, name, v))
				return
			}
			*dst = n
		}
	}
	setBool := func(name string, dst *bool) {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s%s=%q", EnvPrefix, name, v))
				return
			}
			*dst = b
		}
	}
	setString := func(name string, dst *string) {
		if v, ok := get(name); ok && v != "" {
			*dst = v
		}
	}

	setInt("WIDTH", &p.Width)
	setInt("HEIGHT", &p.Height)
	setInt("TARGET_FPS", &p.TargetFPS)
	setBool("FULLSCREEN", &p.Fullscreen)
	setBool("SHOW_FPS", &p.ShowFPS)
	setBool("STRICT", &p.StrictParams)
	setString("SCENE", &p.ScenePath)
	setString("CACHE_DIR", &p.CacheDir)
	setString("LOG", &p.LogPath)
	setString("TITLE", &p.Title)
	setString("FONT", &p.Font)
	setString("STYLE", &p.StylePath)
	if v, ok := get("ASSET_DIRS"); ok && v != "" {
		p.AssetDirs = p.AssetDirs[:0]
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				p.AssetDirs = append(p.AssetDirs, d)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("engineconfig: invalid environment: %s", strings.Join(errs, ", "))
	}
	return nil
}

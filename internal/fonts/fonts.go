// Package fonts finds font files for the overlay text under the asset
// directories, by relative path or by a loose family name.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts are the extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories under each asset base dir.
func BaseDirs(assetDirs []string) []string {
	out := make([]string, 0, len(assetDirs))
	for _, d := range assetDirs {
		out = append(out, filepath.Join(d, "fonts"))
	}
	return out
}

// StripFontsPrefix removes a leading "assets/fonts/" or "fonts/" so a path
// copied from the repo does not end up with a double prefix.
func StripFontsPrefix(path string) string {
	path = filepath.ToSlash(strings.TrimSpace(path))
	for _, prefix := range []string{"assets/fonts/", "fonts/"} {
		if strings.HasPrefix(path, prefix) {
			return strings.TrimPrefix(path, prefix)
		}
	}
	return path
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// SearchCandidates returns search terms to try in order.
// "Inter/Inter-Regular.ttf" -> ["Inter/Inter-Regular.ttf", "Inter", "Inter/Inter", "Inter/Inter-Regular"].
func SearchCandidates(pathOrName string) []string {
	seen := map[string]bool{pathOrName: true}
	candidates := []string{pathOrName}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	// First path segment
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	// Name before first hyphen
	if i := strings.Index(pathOrName, "-"); i > 0 {
		add(pathOrName[:i])
	}
	base := pathOrName
	for _, ext := range Exts {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			add(base[:len(base)-len(ext)])
			break
		}
	}
	return candidates
}

// FindFont searches dirs for a font file whose path matches search, trying
// each of SearchCandidates in turn. When several files match, one whose path
// contains "Regular" wins. It returns the full path or os.ErrNotExist.
func FindFont(dirs []string, search string) (string, error) {
	search = StripFontsPrefix(search)
	for _, dir := range dirs {
		full := filepath.Join(dir, filepath.FromSlash(search))
		if st, err := os.Stat(full); err == nil && !st.IsDir() {
			return full, nil
		}
	}
	for _, term := range SearchCandidates(search) {
		if full, ok := match(dirs, normalizeForMatch(term)); ok {
			return full, nil
		}
	}
	return "", os.ErrNotExist
}

func match(dirs []string, norm string) (string, bool) {
	if norm == "" {
		return "", false
	}
	var found []string
	for _, dir := range dirs {
		list, err := ScanDir(dir)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				found = append(found, filepath.Join(dir, filepath.FromSlash(rel)))
			}
		}
	}
	if len(found) == 0 {
		return "", false
	}
	for _, f := range found {
		if strings.Contains(strings.ToLower(filepath.Base(f)), "regular") {
			return f, true
		}
	}
	return found[0], true
}

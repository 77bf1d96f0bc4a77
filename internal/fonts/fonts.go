package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// SearchCandidates returns search terms to try in order.
// Example: "Inter/Inter-Regular.ttf" -> ["Inter/Inter-Regular.ttf", "Inter", "Inter/Inter", "Inter/Inter-Regular"].
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
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
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

// Finder looks up font files under a list of base directories.
type Finder struct {
	Dirs []string
}

// NewFinder returns a Finder over dirs, or BaseDirs() when dirs is empty.
func NewFinder(dirs ...string) *Finder {
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	return &Finder{Dirs: dirs}
}

// Find searches the finder's dirs for a font file whose path matches search.
// search can be a name like "Inter" or a partial path like "Inter-Regular"; each of SearchCandidates(search) is tried.
// Returns the relative path and the full path of the match. When several files match, a path containing
// "regular" is preferred.
func (f *Finder) Find(search string) (relPath string, fullPath string, err error) {
	for _, term := range SearchCandidates(strings.TrimSpace(search)) {
		if rel, full, ok := f.find(term); ok {
			return rel, full, nil
		}
	}
	return "", "", os.ErrNotExist
}

func (f *Finder) find(search string) (string, string, bool) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", "", false
	}
	var candidates []struct{ rel, full string }
	for _, base := range f.Dirs {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				full := filepath.ToSlash(filepath.Join(base, rel))
				if _, err := os.Stat(full); err == nil {
					candidates = append(candidates, struct{ rel, full string }{rel, full})
				}
			}
		}
	}
	if len(candidates) == 0 {
		return "", "", false
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.rel), "regular") {
			return c.rel, c.full, true
		}
	}
	return candidates[0].rel, candidates[0].full, true
}

package entries

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/LFroesch/hop/internal/index"
)

// Entry is one row in the displayed list: a directory the user can move into.
// Score is only meaningful for frecent entries (HasScore true).
type Entry struct {
	Name     string // display name: base name for children, abbreviated path for frecent
	Path     string // absolute path
	Score    float64
	HasScore bool
}

// Children lists the immediate subdirectories of dir, sorted
// case-insensitively by name. Regular files are excluded; symlinks that
// resolve to directories count as directories. Entries that cannot be
// inspected (permission denied, removed mid-listing) are silently skipped.
func Children(dir string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	items := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, de.Name())
		isDir := de.IsDir()
		if !isDir && de.Type()&os.ModeSymlink != 0 {
			// Stat follows the link; a symlink to a directory is navigable
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				isDir = true
			}
		}
		if !isDir {
			continue
		}

		items = append(items, Entry{Name: de.Name(), Path: path})
	}

	sort.Slice(items, func(i, j int) bool {
		ni := strings.ToLower(items[i].Name)
		nj := strings.ToLower(items[j].Name)
		if ni != nj {
			return ni < nj
		}
		return items[i].Name < items[j].Name
	})

	return items, nil
}

// Frecent returns the top ranked directories from the index as display
// entries, with the home directory abbreviated to ~ in the display name.
func Frecent(ix *index.Index, limit int) []Entry {
	home, _ := os.UserHomeDir()
	now := time.Now()

	ranked := ix.Ranked(limit)
	items := make([]Entry, 0, len(ranked))
	for _, rec := range ranked {
		items = append(items, Entry{
			Name:     AbbreviateHome(rec.Path, home),
			Path:     rec.Path,
			Score:    index.Score(rec.VisitCount, now.Sub(rec.LastVisited)),
			HasScore: true,
		})
	}
	return items
}

// AbbreviateHome replaces a leading home directory with ~ for display.
func AbbreviateHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}

// Filter narrows items to those whose display name contains query as a
// case-insensitive substring, preserving the input order. An empty query
// returns the input unchanged.
func Filter(items []Entry, query string) []Entry {
	if query == "" {
		return items
	}

	queryLower := strings.ToLower(query)
	filtered := make([]Entry, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), queryLower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// MatchBounds returns the byte range [start, end) in name of the first
// case-insensitive occurrence of query, or (-1, -1). The view uses it to
// underline the search hit in each row. Lowercasing can change a rune's
// encoded length (Ⱥ is two bytes, ⱥ is three), so the match is located in a
// lowered copy and the bounds mapped back to the original string rune by
// rune.
func MatchBounds(name, query string) (int, int) {
	if query == "" {
		return -1, -1
	}

	var lowered strings.Builder
	lowered.Grow(len(name))
	origAt := make([]int, 0, len(name))
	for i, r := range name {
		lr := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(lr); j++ {
			origAt = append(origAt, i)
		}
		lowered.WriteRune(lr)
	}

	off := strings.Index(lowered.String(), strings.ToLower(query))
	if off < 0 {
		return -1, -1
	}
	end := off + len(strings.ToLower(query))

	start := origAt[off]
	lastRuneStart := origAt[end-1]
	_, size := utf8.DecodeRuneInString(name[lastRuneStart:])
	return start, lastRuneStart + size
}

package index

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/LFroesch/hop/internal/logger"
)

// ErrNoMatch is returned by BestMatch when the index holds no live entry
// matching the query. The z command turns it into a silent non-zero exit so
// the shell wrapper skips the cd.
var ErrNoMatch = errors.New("no matching directory in index")

// ErrInvalidPath is returned by RecordVisit when the pushed path does not
// exist or is not a directory. The index is left untouched.
var ErrInvalidPath = errors.New("path is not an existing directory")

// decayConstant is the time constant of the exponential age penalty. With 30
// days, five visits a minute ago outrank a hundred visits a year ago, which
// is the ordering we want: stale history fades, recent habits win.
const decayConstant = 30 * 24 * time.Hour

// Record is one visited directory with its accumulated statistics.
type Record struct {
	Path        string
	VisitCount  int
	LastVisited time.Time
}

// Score blends visit frequency and recency: logarithmic frequency weight
// decayed exponentially with age. Strictly increasing in count for fixed age,
// strictly decreasing in age for fixed count. Negative ages (clock skew)
// are treated as zero.
func Score(visitCount int, age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Log1p(float64(visitCount)) * math.Exp(-float64(age)/float64(decayConstant))
}

// Index is the persistent frecency store: a map from absolute directory path
// to its visit statistics, loaded once at startup and flushed atomically.
type Index struct {
	path    string
	records map[string]*Record
	dirty   bool
	now     func() time.Time
}

// Load reads the index file at path. A missing file yields an empty index;
// corrupt or partially written lines are skipped so an interrupted writer
// never costs the whole history.
func Load(path string) *Index {
	ix := &Index{
		path:    path,
		records: make(map[string]*Record),
		now:     time.Now,
	}

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to open index file %s: %v, starting empty", path, err)
		}
		return ix
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		// Format: <visit_count>|<last_visited_unix>|<path>
		// The path goes last so paths containing '|' round-trip.
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}

		count, err := strconv.Atoi(parts[0])
		if err != nil || count < 1 {
			continue
		}
		ts, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		if parts[2] == "" {
			continue
		}

		ix.records[parts[2]] = &Record{
			Path:        parts[2],
			VisitCount:  count,
			LastVisited: time.Unix(ts, 0),
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("Failed to read index file %s: %v, continuing with partial data", path, err)
	}

	return ix
}

// Len returns the number of records in the store, live or not.
func (ix *Index) Len() int {
	return len(ix.records)
}

// RecordVisit normalizes dir and increments its visit statistics, inserting a
// fresh record on first visit. The write is deferred until Flush.
func (ix *Index) RecordVisit(dir string) error {
	normalized, err := Normalize(dir)
	if err != nil {
		return err
	}

	if rec, ok := ix.records[normalized]; ok {
		rec.VisitCount++
		rec.LastVisited = ix.now()
	} else {
		ix.records[normalized] = &Record{
			Path:        normalized,
			VisitCount:  1,
			LastVisited: ix.now(),
		}
	}
	ix.dirty = true

	return nil
}

// Normalize resolves dir to its canonical absolute form and verifies it is an
// existing directory.
func Normalize(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, dir)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, dir)
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, dir)
	}
	return resolved, nil
}

// Flush writes the store back to disk if anything changed. The file is
// written to a temp file in the same directory and renamed into place, so a
// crash or a concurrent writer can never leave a torn index behind;
// conflicting writers race last-writer-wins.
func (ix *Index) Flush() error {
	if !ix.dirty {
		return nil
	}

	dir := filepath.Dir(ix.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hop-index-*")
	if err != nil {
		return fmt.Errorf("cannot create temp index file: %w", err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range ix.records {
		fmt.Fprintf(w, "%d|%d|%s\n", rec.VisitCount, rec.LastVisited.Unix(), rec.Path)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("cannot write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cannot write index: %w", err)
	}
	os.Chmod(tmpPath, 0644)

	if err := os.Rename(tmpPath, ix.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cannot replace index file: %w", err)
	}

	ix.dirty = false
	return nil
}

// Ranked returns up to limit records ordered by descending frecency score,
// ties broken by more recent last visit, then by path for determinism. Paths
// that no longer exist on disk are filtered from the result without touching
// the store, so temporarily unmounted directories keep their history.
// limit <= 0 means no limit.
func (ix *Index) Ranked(limit int) []Record {
	now := ix.now()

	ranked := make([]Record, 0, len(ix.records))
	for _, rec := range ix.records {
		if !dirExists(rec.Path) {
			continue
		}
		ranked = append(ranked, *rec)
	}

	sort.Slice(ranked, func(i, j int) bool {
		si := Score(ranked[i].VisitCount, now.Sub(ranked[i].LastVisited))
		sj := Score(ranked[j].VisitCount, now.Sub(ranked[j].LastVisited))
		if si != sj {
			return si > sj
		}
		if !ranked[i].LastVisited.Equal(ranked[j].LastVisited) {
			return ranked[i].LastVisited.After(ranked[j].LastVisited)
		}
		return ranked[i].Path < ranked[j].Path
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// BestMatch returns the highest-ranked path containing query as a
// case-insensitive substring, or the highest-ranked path overall when query
// is empty. Dead paths are skipped, not pruned.
func (ix *Index) BestMatch(query string) (string, error) {
	queryLower := strings.ToLower(query)

	for _, rec := range ix.Ranked(0) {
		if query == "" || strings.Contains(strings.ToLower(rec.Path), queryLower) {
			return rec.Path, nil
		}
	}

	return "", ErrNoMatch
}

// Prune removes records whose directories no longer exist and reports how
// many were dropped.
func (ix *Index) Prune() int {
	removed := 0
	for path := range ix.records {
		if !dirExists(path) {
			delete(ix.records, path)
			removed++
		}
	}
	if removed > 0 {
		ix.dirty = true
	}
	return removed
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

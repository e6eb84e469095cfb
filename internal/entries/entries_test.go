package entries

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/LFroesch/hop/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func TestChildrenListsOnlyDirectories(t *testing.T) {
	tempDir := t.TempDir()

	os.Mkdir(filepath.Join(tempDir, "Beta"), 0755)
	os.Mkdir(filepath.Join(tempDir, "alpha"), 0755)
	os.Mkdir(filepath.Join(tempDir, "gamma"), 0755)
	os.WriteFile(filepath.Join(tempDir, "file.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(tempDir, "AAA.md"), []byte("x"), 0644)

	items, err := Children(tempDir, true)
	if err != nil {
		t.Fatalf("Children() failed: %v", err)
	}

	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	want := []string{"alpha", "Beta", "gamma"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Children() = %v, want %v", names, want)
	}
}

func TestChildrenHiddenToggle(t *testing.T) {
	tempDir := t.TempDir()
	os.Mkdir(filepath.Join(tempDir, ".git"), 0755)
	os.Mkdir(filepath.Join(tempDir, "src"), 0755)

	withHidden, err := Children(tempDir, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(withHidden) != 2 {
		t.Errorf("showHidden=true listed %d entries, want 2", len(withHidden))
	}

	withoutHidden, err := Children(tempDir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(withoutHidden) != 1 || withoutHidden[0].Name != "src" {
		t.Errorf("showHidden=false listed %v, want only src", withoutHidden)
	}
}

func TestChildrenIncludesSymlinkToDirectory(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "real")
	os.Mkdir(target, 0755)
	os.WriteFile(filepath.Join(tempDir, "realfile"), []byte("x"), 0644)

	if err := os.Symlink(target, filepath.Join(tempDir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(tempDir, "realfile"), filepath.Join(tempDir, "filelink")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	// Broken symlinks are skipped, not errors
	os.Symlink(filepath.Join(tempDir, "gone"), filepath.Join(tempDir, "broken"))

	items, err := Children(tempDir, true)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	want := []string{"link", "real"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Children() = %v, want %v", names, want)
	}
}

func TestChildrenUnreadableDirectory(t *testing.T) {
	if _, err := Children(filepath.Join(t.TempDir(), "missing"), true); err == nil {
		t.Error("Children() on a missing directory should fail")
	}
}

func TestFilter(t *testing.T) {
	items := []Entry{
		{Name: "Documents"},
		{Name: "downloads"},
		{Name: "src"},
		{Name: "DOCS"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case insensitive", "doc", []string{"Documents", "DOCS"}},
		{"order preserved", "o", []string{"Documents", "downloads", "DOCS"}},
		{"no match", "zzz", []string{}},
		{"empty query returns all", "", []string{"Documents", "downloads", "src", "DOCS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.query)
			names := make([]string, 0, len(got))
			for _, item := range got {
				names = append(names, item.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, names, tt.want)
			}
		})
	}
}

func TestFilterThenEmptyRestoresOriginal(t *testing.T) {
	items := []Entry{{Name: "aa"}, {Name: "ab"}, {Name: "ba"}}

	narrowed := Filter(items, "a")
	if len(narrowed) != 3 {
		t.Fatalf("Filter(a) kept %d, want 3", len(narrowed))
	}
	restored := Filter(items, "")
	if !reflect.DeepEqual(restored, items) {
		t.Errorf("Filter(\"\") = %v, want original %v", restored, items)
	}
}

func TestMatchBounds(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantStart int
		wantEnd   int
	}{
		{"Cargo.toml", "car", 0, 3},
		{"Cargo.toml", "argo", 1, 5},
		{"Cargo.toml", "toml", 6, 10},
		{"Cargo.toml", "zzz", -1, -1},
		{"Cargo.toml", "", -1, -1},
		// Ⱥ (2 bytes) lowercases to ⱥ (3 bytes): bounds must track the
		// original encoding, not the lowered one
		{"ȺȺx", "x", 4, 5},
		{"ȺȺx", "ⱥ", 0, 2},
		{"ȺȺx", "ⱥⱥx", 0, 5},
		{"aȺb", "b", 3, 4},
	}
	for _, tt := range tests {
		start, end := MatchBounds(tt.name, tt.query)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("MatchBounds(%q, %q) = (%d, %d), want (%d, %d)",
				tt.name, tt.query, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestMatchBoundsSliceOriginalName(t *testing.T) {
	// The returned range must always be a valid slice of the original
	// string, whatever case folding does to byte lengths
	names := []string{"ȺȺx", "ȾȾ", "aȺȺ", "İstanbul", "straße"}
	queries := []string{"x", "a", "ⱥ", "i", "s", "ȾȾ"}
	for _, name := range names {
		for _, query := range queries {
			start, end := MatchBounds(name, query)
			if start < 0 {
				continue
			}
			if start > end || end > len(name) {
				t.Errorf("MatchBounds(%q, %q) = (%d, %d), outside [0, %d]",
					name, query, start, end, len(name))
			}
		}
	}
}

func TestAbbreviateHome(t *testing.T) {
	tests := []struct {
		path string
		home string
		want string
	}{
		{"/home/user/src", "/home/user", "~/src"},
		{"/home/user", "/home/user", "~"},
		{"/home/username/src", "/home/user", "/home/username/src"},
		{"/etc", "/home/user", "/etc"},
		{"/etc", "", "/etc"},
	}
	for _, tt := range tests {
		if got := AbbreviateHome(tt.path, tt.home); got != tt.want {
			t.Errorf("AbbreviateHome(%s, %s) = %s, want %s", tt.path, tt.home, got, tt.want)
		}
	}
}

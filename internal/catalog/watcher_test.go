package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
)

func TestWatcherReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.xml")
	writeFile(t, path, `<stations><station id="1"><name>A</name><url>http://a</url></station></stations>`)

	initial, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var published []*core.Catalog
	w := NewWatcher(path, initial, func(c *core.Catalog) {
		published = append(published, c)
	}, zerolog.Nop())

	if w.Reload() {
		t.Error("Reload() = true for unchanged file")
	}

	writeFile(t, path, `<stations>
		<station id="1"><name>A</name><url>http://a</url></station>
		<station id="2"><name>B</name><url>http://b</url></station>
	</stations>`)
	if !w.Reload() {
		t.Fatal("Reload() = false after change")
	}
	if len(published) != 1 || published[0].Len() != 2 {
		t.Fatalf("published = %v, want one catalog of 2 stations", published)
	}

	// A broken document keeps the previous catalog.
	writeFile(t, path, `<stations><station`)
	if w.Reload() {
		t.Error("Reload() = true for malformed file")
	}
	if len(published) != 1 {
		t.Errorf("published %d catalogs, want 1", len(published))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

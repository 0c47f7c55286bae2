package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vkarthik/canvault/internal/model"
)

func setupVault(t *testing.T, files map[string]string) *DirStore {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		target := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	store, err := NewDirStore(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func note(due string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if due != "" {
		b.WriteString("due: " + due + "\n")
	}
	b.WriteString("status: Todo\ntags:\n  - Status/Todo\n---\n\n# body\n")
	return b.String()
}

func TestCollectSelection(t *testing.T) {
	store := setupVault(t, map[string]string{
		"School/Math/Todo/HW 3.md":      note("2026-02-12"),
		"School/Math/Todo/Reading.md":   note(""),
		"School/Math/Done/Old.md":       note("2026-01-01"),
		"School/Math/Todo/notes.txt":    "not a note",
		"Other/Math/Todo/Elsewhere.md":  note("2026-02-12"),
		"School/TodoIsh/Trick/Fake.md":  note("2026-02-12"),
		"School/Math/Scratch.md":        "# loose note\n",
		"School/History/Todo/Essay.md":  note("2026-02-20"),
		"School/History/Todo/.hidden":   "junk",
	})

	items, err := Collect(store, StoreMeta{Store: store}, "School/", "Todo")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	byName := make(map[string]model.DueItem)
	for _, item := range items {
		byName[item.DisplayName] = item
	}
	if len(items) != 3 {
		t.Fatalf("collected %d items, want 3: %v", len(items), byName)
	}

	hw := byName["HW 3"]
	if hw.Subject != "Math" || hw.DateKey() != "2026-02-12" {
		t.Fatalf("unexpected HW 3 item: %+v", hw)
	}
	reading := byName["Reading"]
	if reading.HasDue() {
		t.Fatalf("Reading should have no due date")
	}
	essay := byName["Essay"]
	if essay.Subject != "History" {
		t.Fatalf("Essay subject = %q", essay.Subject)
	}
}

func TestCollectToleratesMalformedFrontMatter(t *testing.T) {
	store := setupVault(t, map[string]string{
		"School/Math/Todo/Broken.md": "---\ndue: [unclosed\n---\nbody\n",
	})
	items, err := Collect(store, StoreMeta{Store: store}, "School/", "Todo")
	if err != nil {
		t.Fatalf("collect must stay total: %v", err)
	}
	if len(items) != 1 || items[0].HasDue() {
		t.Fatalf("malformed metadata should yield a due-less item: %+v", items)
	}
}

func TestCompleteRoundTrip(t *testing.T) {
	store := setupVault(t, map[string]string{
		"School/Math/Todo/HW 3.md": note("2026-02-12"),
	})
	item, err := model.NewDueItem("School/Math/Todo/HW 3.md", "Todo", nil)
	if err != nil {
		t.Fatalf("item: %v", err)
	}

	res, err := Complete(store, item, "Todo", "Done")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.NewPath != "School/Math/Done/HW 3.md" {
		t.Fatalf("new path = %q", res.NewPath)
	}

	if _, err := store.Read(File{Path: item.Path}); err == nil {
		t.Fatalf("original path should be gone")
	}
	moved, err := store.Read(File{Path: res.NewPath})
	if err != nil {
		t.Fatalf("read moved note: %v", err)
	}
	if !strings.Contains(moved, "status: Done") {
		t.Fatalf("status not rewritten:\n%s", moved)
	}
	if strings.Contains(moved, "Status/Todo") {
		t.Fatalf("Status/Todo tag line should be removed:\n%s", moved)
	}
	if !strings.Contains(moved, "# body") {
		t.Fatalf("note body must survive untouched:\n%s", moved)
	}
}

func TestCompleteIdempotentFolderCreate(t *testing.T) {
	store := setupVault(t, map[string]string{
		"School/Math/Todo/A.md":        note("2026-02-12"),
		"School/Math/Done/Existing.md": note(""),
	})
	item, _ := model.NewDueItem("School/Math/Todo/A.md", "Todo", nil)
	if _, err := Complete(store, item, "Todo", "Done"); err != nil {
		t.Fatalf("existing Done folder must not fail completion: %v", err)
	}
}

func TestCompleteWithoutMarkerSegment(t *testing.T) {
	store := setupVault(t, map[string]string{
		"School/Math/Loose.md": note(""),
	})
	item := model.DueItem{Path: "School/Math/Loose.md", DisplayName: "Loose", Subject: model.UnknownSubject}
	if _, err := Complete(store, item, "Todo", "Done"); err == nil {
		t.Fatalf("expected marker-segment error")
	}
}

func TestRewriteStatusDonePreservesIndent(t *testing.T) {
	in := "---\nstatus: Todo\ntags:\n  - Status/Todo\n  - School\n---\n"
	out := RewriteStatusDone(in, "Todo", "Done")
	if !strings.Contains(out, "status: Done") {
		t.Fatalf("missing rewritten status:\n%s", out)
	}
	if !strings.Contains(out, "  - School") {
		t.Fatalf("unrelated tag lines must survive:\n%s", out)
	}
}

func TestRenderNoteRoundTripsThroughParser(t *testing.T) {
	due := day(t, "2026-02-12")
	content := RenderNote(NoteFields{
		Name:     "HW 3",
		Due:      &due,
		CanvasID: "12345",
		URL:      "https://canvas.example/assignments/12345",
		Points:   20,
		Course:   "Math",
	}, "Todo")

	fm, err := ParseFrontMatter(content)
	if err != nil || fm == nil {
		t.Fatalf("rendered note must parse: %v", err)
	}
	if fm.CanvasID != "12345" || fm.Status != "Todo" {
		t.Fatalf("unexpected front matter: %+v", fm)
	}
	if got := fm.DueTime(); got == nil || got.Format("2006-01-02") != "2026-02-12" {
		t.Fatalf("unexpected due: %v", got)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"HW 3: Fractions":   "HW 3- Fractions",
		"Lab/Report":        "Lab-Report",
		"  ":                "Untitled",
		"Quiz <week 2>":     "Quiz (week 2)",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func day(t *testing.T, key string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		t.Fatalf("parse %s: %v", key, err)
	}
	return parsed
}

package statedir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit_CreatesDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "hapless")
	sd, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := os.Stat(sd.Path()); err != nil {
		t.Fatalf("expected dir to exist: %v", err)
	}
}

func TestNextID_Monotonic(t *testing.T) {
	sd, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for want := 1; want <= 5; want++ {
		id, err := sd.NextID()
		if err != nil {
			t.Fatal(err)
		}
		if id != itoa(want) {
			t.Fatalf("NextID() = %s, want %s", id, itoa(want))
		}
		if err := os.Mkdir(sd.HapDir(id), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNextID_MonotonicWithoutGapsInMiddle(t *testing.T) {
	sd, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"1", "2", "3"} {
		if err := os.Mkdir(sd.HapDir(id), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Removing a non-max id never causes reuse: id 4 follows 3 regardless.
	if err := os.RemoveAll(sd.HapDir("2")); err != nil {
		t.Fatal(err)
	}
	id, err := sd.NextID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "4" {
		t.Fatalf("NextID() after removing a non-max id = %s, want 4", id)
	}
}

func TestNextID_CleaningTheMaxAllowsReuse(t *testing.T) {
	// Allocation is a pure max(existing)+1 rule, so removing the current
	// maximum (e.g. via clean) legitimately frees its id for reuse; this
	// is distinct from the no-reuse guarantee for ids that aren't the max.
	sd, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"1", "2", "3"} {
		if err := os.Mkdir(sd.HapDir(id), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.RemoveAll(sd.HapDir("3")); err != nil {
		t.Fatal(err)
	}
	id, err := sd.NextID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "3" {
		t.Fatalf("NextID() = %s, want 3 (reused since it was the removed max)", id)
	}
}

func TestListHapIDs_SkipsNonDigit(t *testing.T) {
	sd, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"1", "2", "lockfile", ".hidden"} {
		if err := os.Mkdir(filepath.Join(sd.Path(), name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	ids, err := sd.ListHapIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Fatalf("ListHapIDs() = %v, want [1 2]", ids)
	}
}

func TestLookup_ByIDAndBaseName(t *testing.T) {
	sd, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hapDir := sd.HapDir("1")
	if err := os.Mkdir(hapDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(hapDir, "name"), []byte("worker@2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if id, path, ok := sd.Lookup("1"); !ok || id != "1" || path != hapDir {
		t.Fatalf("Lookup by id failed: id=%s path=%s ok=%v", id, path, ok)
	}
	if id, _, ok := sd.Lookup("worker"); !ok || id != "1" {
		t.Fatalf("Lookup by base name failed: id=%s ok=%v", id, ok)
	}
	// Raw name lookup ("worker@2") must NOT succeed (spec's resolved ambiguity).
	if _, _, ok := sd.Lookup("worker@2"); ok {
		t.Fatalf("Lookup by raw name should fail, only base names resolve")
	}
	if _, _, ok := sd.Lookup("missing"); ok {
		t.Fatalf("Lookup of unknown alias should fail")
	}
}

func TestAccessible(t *testing.T) {
	sd, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hapDir := sd.HapDir("1")
	if err := os.Mkdir(hapDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if !sd.Accessible(hapDir) {
		t.Fatalf("own hap directory should be accessible")
	}
	if sd.Accessible(filepath.Join(sd.Path(), "99")) {
		t.Fatalf("missing directory should not be accessible")
	}
}

func itoa(n int) string {
	digits := "0123456789"
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%10]}, buf...)
		n /= 10
	}
	return string(buf)
}

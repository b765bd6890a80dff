package ledger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_ids.json")

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d entries", l.Len())
	}
	if l.Contains("anything") {
		t.Error("empty ledger claims to contain an id")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_ids.json")

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	l.Add("aaa")
	l.Add("bbb")
	l.Add("aaa") // adding twice is a no-op
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Errorf("expected 2 entries after reload, got %d", reloaded.Len())
	}
	for _, id := range []string{"aaa", "bbb"} {
		if !reloaded.Contains(id) {
			t.Errorf("reloaded ledger missing %q", id)
		}
	}
}

func TestSaveGrowsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_ids.json")

	first, _ := Load(path)
	first.Add("run1")
	if err := first.Save(); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	second, err := Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	second.Add("run2")
	if err := second.Save(); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	final, _ := Load(path)
	if !final.Contains("run1") || !final.Contains("run2") {
		t.Error("ledger lost entries across runs")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_ids.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d", l.Len())
	}
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_ids.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt ledger file")
	}
}

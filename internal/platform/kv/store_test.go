package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"worktime/internal/platform/kv"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func exerciseStore(t *testing.T, store kv.Store) {
	t.Helper()
	ctx := context.Background()

	var got sample
	ok, err := kv.GetJSON(ctx, store, "missing", &got)
	if err != nil || ok {
		t.Fatalf("missing key should report absent, got ok=%t err=%v", ok, err)
	}

	if err := kv.SetJSON(ctx, store, kv.KeySettings, sample{Name: "a", Count: 2}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.SetJSON(ctx, store, kv.KeySettings, sample{Name: "b", Count: 3}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	ok, err = kv.GetJSON(ctx, store, kv.KeySettings, &got)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%t err=%v", ok, err)
	}
	if got.Name != "b" || got.Count != 3 {
		t.Fatalf("expected overwritten value, got %+v", got)
	}

	if err := store.Remove(ctx, kv.KeySettings); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, kv.KeySettings); err != nil {
		t.Fatalf("removing an absent key should be a no-op: %v", err)
	}
	if _, ok, _ := store.Get(ctx, kv.KeySettings); ok {
		t.Fatalf("key should be gone after remove")
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	exerciseStore(t, store)
	if store.Writes() != 3 {
		t.Fatalf("expected 3 writes, got %d", store.Writes())
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	store, err := kv.NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	exerciseStore(t, store)

	ctx := context.Background()
	if err := kv.SetJSON(ctx, store, kv.KeySessions, []sample{{Name: "x"}}); err != nil {
		t.Fatalf("set sessions: %v", err)
	}
	reopened, err := kv.NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var got []sample
	ok, err := kv.GetJSON(ctx, reopened, kv.KeySessions, &got)
	if err != nil || !ok || len(got) != 1 || got[0].Name != "x" {
		t.Fatalf("expected persisted sessions, got %+v ok=%t err=%v", got, ok, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err=%v", err)
	}
}

func TestFileStoreRejectsInvalidJSONAndCorruptFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store, err := kv.NewFileStore(filepath.Join(dir, "store.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := store.Set(context.Background(), "k", []byte("{not json")); err == nil {
		t.Fatalf("invalid JSON value must be rejected")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("[1,2"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	if _, err := kv.NewFileStore(corrupt); err == nil {
		t.Fatalf("corrupt store file must fail to open")
	}
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "db", "worktime.db")
	store, err := kv.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}

package localstore

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "device", "local.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, ok, err := s.Get(ctx, "authToken"); ok || err != nil {
		t.Fatalf("expected missing key, got %v %v", ok, err)
	}

	if err := s.Set(ctx, "authToken", "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "authToken", "b"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(ctx, "authToken")
	if err != nil || !ok || v != "b" {
		t.Fatalf("expected b, got %q %v %v", v, ok, err)
	}

	if err := s.Set(ctx, "userData", "{}"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, "authToken", "userData", "missing"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "userData"); ok {
		t.Error("expected userData to be removed")
	}
}

func TestKeysAndPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"designer:drafts:b", "designer:autosave", "designer:drafts:a", "authToken"} {
		if err := s.Set(ctx, k, "x"); err != nil {
			t.Fatal(err)
		}
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	keys, err := s.Keys(ctx, "designer:drafts:")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(keys, []string{"designer:drafts:a", "designer:drafts:b"}) {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("expected v, got %q", v)
	}
}

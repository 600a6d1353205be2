package store

import (
	"context"
	"errors"
	"testing"
)

func TestPersistenceReadWriteErase(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if _, err := p.Read(ProgressKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}
	if keys := p.Keys(context.Background()); len(keys) != 0 {
		t.Fatalf("expected no keys, got %v", keys)
	}

	if err := p.Write(ProgressKey, []byte(`{"a-0":true}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := p.Write(ExpansionKey, []byte(`{"sections":{},"allExpanded":false}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := p.Read(ProgressKey)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `{"a-0":true}` {
		t.Fatalf("unexpected value %q", got)
	}

	keys := p.Keys(context.Background())
	if len(keys) != 2 || keys[0] != ProgressKey || keys[1] != ExpansionKey {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := p.Erase(ProgressKey); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if err := p.Erase(ProgressKey); err != nil {
		t.Fatalf("erasing a missing key should be a no-op: %v", err)
	}
	if _, err := p.Read(ProgressKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after erase, got %v", err)
	}
}

func TestPersistenceRejectsPathKeys(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.Write("../escape", []byte("x")); err == nil {
		t.Fatal("expected path-like key to be rejected")
	}
	if err := p.Write("  ", []byte("x")); err == nil {
		t.Fatal("expected blank key to be rejected")
	}
}

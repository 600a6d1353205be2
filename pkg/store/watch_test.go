package store

import (
	"context"
	"testing"
	"time"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string    { return t.path }
func (t testConfig) Source() string      { return "quests.json" }
func (t testConfig) ARIA() bool          { return true }
func (t testConfig) ClickAnywhere() bool { return true }
func (t testConfig) ExportName() string  { return "oblivion-progress.json" }
func (t testConfig) LogLevel() string    { return "warn" }

func TestPersistenceWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Write(ProgressKey, []byte(`{"a-0":true}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == ProgressKey {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

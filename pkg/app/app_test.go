package app

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
	"tableflip.dev/questlog/pkg/store"
)

type memoryPersistence struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{values: make(map[string][]byte)}
}

func (m *memoryPersistence) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryPersistence) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryPersistence) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryPersistence) Keys(context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func (m *memoryPersistence) BasePath() string { return "" }

const scenarioDoc = `{
  "A": [{"name":"Q1","desc":"d1"},{"name":"Q2","desc":"d2"}],
  "B": {"C":[{"name":"Q3","desc":"d3"}]}
}`

func newService(p store.Persistence, doc string) *Service {
	return &Service{
		Loader:      quest.Static(doc),
		Persistence: p,
		Options:     checklist.DefaultRenderOptions(),
		Logger:      log.New(&bytes.Buffer{}),
	}
}

func TestOpenHeadlessRestoresProgress(t *testing.T) {
	p := newMemoryPersistence()
	_ = p.Write(store.ProgressKey, []byte(`{"a-0":true,"a-1":false,"c-0":true}`))

	c, _, err := newService(p, scenarioDoc).OpenHeadless(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got := c.Progress()
	if got.Checked != 2 || got.Total != 3 || got.Percent != 67 {
		t.Fatalf("unexpected progress %+v", got)
	}
}

func TestOpenReturnsLoadError(t *testing.T) {
	_, _, err := newService(newMemoryPersistence(), `{"A":`).OpenHeadless(context.Background())
	var le *quest.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestOpenRequiresPersistence(t *testing.T) {
	s := newService(nil, scenarioDoc)
	if _, _, err := s.OpenHeadless(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}

func TestResetErasesBothKeys(t *testing.T) {
	p := newMemoryPersistence()
	_ = p.Write(store.ProgressKey, []byte(`{}`))
	_ = p.Write(store.ExpansionKey, []byte(`{}`))
	_ = p.Write("unrelated", []byte(`1`))

	if err := newService(p, scenarioDoc).Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	keys := p.Keys(context.Background())
	if len(keys) != 1 || keys[0] != "unrelated" {
		t.Fatalf("unexpected keys after reset: %v", keys)
	}
}

func TestReportSectionsInRenderOrder(t *testing.T) {
	p := newMemoryPersistence()
	_ = p.Write(store.ProgressKey, []byte(`{"c-0":true}`))
	c, h, err := newService(p, scenarioDoc).OpenHeadless(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	r := Report(c, h)
	var cats []string
	for _, s := range r.Sections {
		cats = append(cats, s.Category)
	}
	if want := []string{"A", "B", "C"}; len(cats) != 3 || cats[0] != want[0] || cats[1] != want[1] || cats[2] != want[2] {
		t.Fatalf("unexpected order %v", cats)
	}
	b := r.Sections[1]
	if b.Header != "B (1)" || b.Progress.Checked != 1 || b.Progress.Total != 1 {
		t.Fatalf("unexpected B section %+v", b)
	}
	if len(r.Sections[0].Items) != 2 || r.Sections[0].Items[0].ID != "a-0" {
		t.Fatalf("unexpected A items %+v", r.Sections[0].Items)
	}
	if r.Progress.Percent != 33 {
		t.Fatalf("unexpected total %+v", r.Progress)
	}
}

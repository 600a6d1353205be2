package tui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
	"tableflip.dev/questlog/pkg/store"
)

type memoryStore struct {
	values map[string][]byte
}

func (m *memoryStore) Read(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) Write(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) Erase(key string) error {
	delete(m.values, key)
	return nil
}

func (m *memoryStore) Keys(context.Context) []string { return nil }

func (m *memoryStore) Watch(context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func (m *memoryStore) BasePath() string { return "" }

const questDoc = `{
  "Main Quest": [
    {"name":"Deliver the Amulet","desc":"Take the Amulet of Kings to Jauffre at Weynon Priory."},
    {"name":"Find the Heir"}
  ],
  "Guilds": {"Fighters Guild": [{"name":"A Rat Problem"}]}
}`

func newLoadedModel(t *testing.T, kv *memoryStore) *Model {
	t.Helper()
	m := New(&app.Service{
		Loader:      quest.Static(questDoc),
		Persistence: kv,
		Options:     checklist.DefaultRenderOptions(),
		Logger:      log.New(&bytes.Buffer{}),
	})
	t.Cleanup(m.cancel)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(m.loadCmd()())
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after load, got %v (err %v)", m.mode, m.loadErr)
	}
	return m
}

func press(m *Model, msgs ...tea.KeyPressMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keySpace = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestStartsCollapsedWithTopLevelSections(t *testing.T) {
	m := newLoadedModel(t, &memoryStore{values: map[string][]byte{}})
	if len(m.lines) != 2 {
		t.Fatalf("expected two collapsed top-level sections, got %d", len(m.lines))
	}
	view := m.View()
	for _, want := range []string{"Main Quest (2)", "Guilds (1)", "0% (0/3)", "Expand All"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEnterExpandsSectionAndSpaceChecksRow(t *testing.T) {
	kv := &memoryStore{values: map[string][]byte{}}
	m := newLoadedModel(t, kv)

	press(m, keyEnter)
	if len(m.lines) != 4 {
		t.Fatalf("expected section rows to show, got %d lines", len(m.lines))
	}
	if !gjson.GetBytes(kv.values[store.ExpansionKey], "sections.Main Quest").Bool() {
		t.Fatalf("expansion not persisted: %s", kv.values[store.ExpansionKey])
	}

	press(m, keyDown, keySpace)
	if got := m.surface.Shown(); got.Checked != 1 || got.Percent != 33 {
		t.Fatalf("unexpected progress %+v", got)
	}
	if !gjson.GetBytes(kv.values[store.ProgressKey], "main-quest-0").Bool() {
		t.Fatalf("progress not persisted: %s", kv.values[store.ProgressKey])
	}
	if !strings.Contains(m.View(), "Weynon Priory") {
		t.Fatalf("focused row should show its description:\n%s", m.View())
	}

	// Enter on a row toggles it back through click-anywhere.
	press(m, keyEnter)
	if got := m.surface.Shown(); got.Checked != 0 {
		t.Fatalf("expected row unchecked, got %+v", got)
	}
}

func TestToggleAllExpandsEverySection(t *testing.T) {
	m := newLoadedModel(t, &memoryStore{values: map[string][]byte{}})
	press(m, runeKey('a'))
	if !m.list.AllExpanded() {
		t.Fatalf("expected all expanded")
	}
	if len(m.lines) != 6 {
		t.Fatalf("expected every node visible, got %d", len(m.lines))
	}
	if !strings.Contains(m.View(), "Collapse All") {
		t.Fatalf("toggle label not updated:\n%s", m.View())
	}
}

func TestWatchEventReloadsProgress(t *testing.T) {
	kv := &memoryStore{values: map[string][]byte{}}
	m := newLoadedModel(t, kv)

	kv.values[store.ProgressKey] = []byte(`{"fighters-guild-0":true}`)
	m.Update(watchEventMsg{event: store.Event{Key: store.ExpansionKey}})
	if m.surface.Shown().Checked != 0 {
		t.Fatalf("expansion events must not reload progress")
	}
	m.Update(watchEventMsg{event: store.Event{Key: store.ProgressKey}})
	if got := m.surface.Shown(); got.Checked != 1 {
		t.Fatalf("expected reloaded progress, got %+v", got)
	}
}

func TestImportPromptAppliesFile(t *testing.T) {
	m := newLoadedModel(t, &memoryStore{values: map[string][]byte{}})
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte(`{"main-quest-1":true}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	press(m, runeKey('i'))
	if m.mode != modeImport {
		t.Fatalf("expected import mode")
	}
	m.input.SetValue(path)
	press(m, keyEnter)
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after import")
	}
	if got := m.surface.Shown(); got.Checked != 1 {
		t.Fatalf("unexpected progress after import %+v (status %q)", got, m.status)
	}
}

func TestImportInvalidJSONReportsError(t *testing.T) {
	m := newLoadedModel(t, &memoryStore{values: map[string][]byte{}})
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{nope`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	press(m, runeKey('i'))
	m.input.SetValue(path)
	press(m, keyEnter)
	if !strings.HasPrefix(m.status, "Invalid JSON file") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestLoadFailureShowsError(t *testing.T) {
	m := New(&app.Service{Loader: quest.Static(`"nope"`), Persistence: &memoryStore{values: map[string][]byte{}}})
	t.Cleanup(m.cancel)
	m.Update(m.loadCmd()())
	if m.mode != modeFailed {
		t.Fatalf("expected failed mode")
	}
	if !strings.Contains(m.View(), "Failed to load quest data from memory") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
	var le *quest.LoadError
	if !errors.As(m.Err(), &le) {
		t.Fatalf("expected LoadError, got %v", m.Err())
	}
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestHelpOverlayOpensAndCloses(t *testing.T) {
	m := newLoadedModel(t, &memoryStore{values: map[string][]byte{}})
	press(m, runeKey('?'))
	if m.mode != modeHelp {
		t.Fatalf("expected help mode")
	}
	if !strings.Contains(m.View(), "Moving around") {
		t.Fatalf("help content missing:\n%s", m.View())
	}
	press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNormal {
		t.Fatalf("expected help to close")
	}
}

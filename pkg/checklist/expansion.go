package checklist

import (
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"tableflip.dev/questlog/pkg/store"
)

// ExpansionStore owns which sections are expanded and the global
// all-expanded flag. The flag starts false and changes only through Restore
// and ToggleAll.
type ExpansionStore struct {
	KV      KV
	Key     string
	Surface Surface
	Options RenderOptions
	Logger  *log.Logger

	allExpanded bool
}

// AllExpanded reports the global flag.
func (e *ExpansionStore) AllExpanded() bool { return e.allExpanded }

// Snapshot records every section's visibility. Sections sharing a category
// name share one entry; the last one rendered wins.
func (e *ExpansionStore) Snapshot(t *Tree) ExpansionRecord {
	rec := NewRecord()
	for _, s := range t.Sections {
		rec.Set(s.Category, e.Surface.Expanded(s.Node))
	}
	return ExpansionRecord{Sections: rec, AllExpanded: e.allExpanded}
}

// Save persists the snapshot.
func (e *ExpansionStore) Save(t *Tree) error {
	data, err := json.Marshal(e.Snapshot(t))
	if err != nil {
		return err
	}
	return e.KV.Write(e.key(), data)
}

// Restore applies the persisted record to sections whose category has an
// entry. A missing or corrupt record changes nothing; corruption is logged.
func (e *ExpansionStore) Restore(t *Tree) {
	data, err := e.KV.Read(e.key())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.logger().Warn("read expansion state", "key", e.key(), "err", err)
		}
		return
	}
	saved, err := parseObject(data)
	if err != nil {
		e.logger().Warn("ignoring saved expansion state", "err", &PersistedStateParseError{Key: e.key(), Err: err})
		return
	}

	e.allExpanded = truthy(saved["allExpanded"])
	e.Surface.SetToggleAllLabel(toggleAllLabel(e.allExpanded))

	sections, ok := saved["sections"]
	if !ok || !sections.IsObject() {
		return
	}
	flags := make(map[string]bool)
	sections.ForEach(func(key, value gjson.Result) bool {
		flags[key.String()] = truthy(value)
		return true
	})
	for _, s := range t.Sections {
		if expanded, ok := flags[s.Category]; ok {
			applyExpanded(e.Surface, e.Options, s.Node, expanded)
		}
	}
}

// ToggleAll flips the global flag, forces every section to it and persists.
func (e *ExpansionStore) ToggleAll(t *Tree) error {
	e.allExpanded = !e.allExpanded
	for _, s := range t.Sections {
		applyExpanded(e.Surface, e.Options, s.Node, e.allExpanded)
	}
	e.Surface.SetToggleAllLabel(toggleAllLabel(e.allExpanded))
	return e.Save(t)
}

func (e *ExpansionStore) key() string {
	if e.Key == "" {
		return store.ExpansionKey
	}
	return e.Key
}

func (e *ExpansionStore) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

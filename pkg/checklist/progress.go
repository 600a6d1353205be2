package checklist

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"tableflip.dev/questlog/pkg/store"
)

// KV is the slice of store.Persistence the stores need.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
}

// Progress is the aggregate completion of a set of rows.
type Progress struct {
	Checked int `json:"checked"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// ComputeProgress rounds half up; an empty set is 0%.
func ComputeProgress(checked, total int) Progress {
	p := Progress{Checked: checked, Total: total}
	if total > 0 {
		p.Percent = int(math.Floor(float64(checked)/float64(total)*100 + 0.5))
	}
	return p
}

func (p Progress) String() string {
	if p.Total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%% (%d/%d)", p.Percent, p.Checked, p.Total)
}

// ProgressStore persists the checked state of every row.
type ProgressStore struct {
	KV      KV
	Key     string
	Surface Surface
	Logger  *log.Logger
}

// Snapshot records every row's checked state in render order.
func (p *ProgressStore) Snapshot(t *Tree) *Record {
	rec := NewRecord()
	for _, r := range t.Rows {
		rec.Set(string(r.ID), p.Surface.Checked(r.Node))
	}
	return rec
}

// Save persists the snapshot, then refreshes the progress display.
func (p *ProgressStore) Save(t *Tree) error {
	data, err := json.Marshal(p.Snapshot(t))
	if err != nil {
		return err
	}
	if err := p.KV.Write(p.key(), data); err != nil {
		return err
	}
	p.Surface.SetProgress(p.Compute(t))
	return nil
}

// Restore applies the persisted record. A missing or corrupt record leaves
// rows untouched; corruption is logged.
func (p *ProgressStore) Restore(t *Tree) {
	data, err := p.KV.Read(p.key())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger().Warn("read progress", "key", p.key(), "err", err)
		}
		return
	}
	saved, err := parseObject(data)
	if err != nil {
		p.logger().Warn("ignoring saved progress", "err", &PersistedStateParseError{Key: p.key(), Err: err})
		return
	}
	for _, r := range t.Rows {
		p.Surface.SetChecked(r.Node, truthy(saved[string(r.ID)]))
	}
	p.Surface.SetProgress(p.Compute(t))
}

// Compute counts checked rows.
func (p *ProgressStore) Compute(t *Tree) Progress {
	return p.computeRows(t.Rows)
}

func (p *ProgressStore) computeRows(rows []Row) Progress {
	checked := 0
	for _, r := range rows {
		if p.Surface.Checked(r.Node) {
			checked++
		}
	}
	return ComputeProgress(checked, len(rows))
}

func (p *ProgressStore) key() string {
	if p.Key == "" {
		return store.ProgressKey
	}
	return p.Key
}

func (p *ProgressStore) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

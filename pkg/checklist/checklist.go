package checklist

import (
	"io"

	"github.com/charmbracelet/log"

	"tableflip.dev/questlog/pkg/quest"
)

// Checklist is a quest tree mounted on a surface together with its stores.
type Checklist struct {
	surface   Surface
	log       *log.Logger
	tree      *Tree
	progress  *ProgressStore
	expansion *ExpansionStore
	gateway   *Gateway
}

// Option customises Mount.
type Option func(*config)

type config struct {
	logger       *log.Logger
	render       RenderOptions
	progressKey  string
	expansionKey string
}

// WithLogger routes store diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRenderOptions selects the presentation variant.
func WithRenderOptions(o RenderOptions) Option {
	return func(c *config) { c.render = o }
}

// WithKeys overrides the storage keys.
func WithKeys(progress, expansion string) Option {
	return func(c *config) {
		c.progressKey = progress
		c.expansionKey = expansion
	}
}

// Mount renders nodes onto surface, then restores persisted progress and
// expansion state. Restoration runs only after the whole tree exists, so
// listeners see restored state rather than the collapsed default.
func Mount(nodes []*quest.Node, surface Surface, kv KV, opts ...Option) *Checklist {
	cfg := &config{logger: log.Default(), render: DefaultRenderOptions()}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Checklist{surface: surface, log: cfg.logger}
	c.progress = &ProgressStore{KV: kv, Key: cfg.progressKey, Surface: surface, Logger: cfg.logger}
	c.expansion = &ExpansionStore{KV: kv, Key: cfg.expansionKey, Surface: surface, Options: cfg.render, Logger: cfg.logger}
	c.gateway = &Gateway{Progress: c.progress}

	r := &Renderer{
		Surface:        surface,
		Options:        cfg.render,
		SectionToggled: c.saveExpansion,
		RowChanged:     c.saveProgress,
	}
	c.tree = r.Render(nodes, Root)
	surface.SetToggleAllLabel(toggleAllLabel(false))
	surface.SetProgress(c.progress.Compute(c.tree))

	c.progress.Restore(c.tree)
	c.expansion.Restore(c.tree)
	return c
}

func (c *Checklist) saveExpansion() {
	if err := c.expansion.Save(c.tree); err != nil {
		c.log.Error("save expansion state", "err", err)
	}
}

func (c *Checklist) saveProgress() {
	if err := c.progress.Save(c.tree); err != nil {
		c.log.Error("save progress", "err", err)
	}
}

// Tree returns the mounted tree.
func (c *Checklist) Tree() *Tree { return c.tree }

// Progress returns the aggregate completion.
func (c *Checklist) Progress() Progress { return c.progress.Compute(c.tree) }

// SectionProgress returns the completion of the rows under section n.
func (c *Checklist) SectionProgress(n Node) Progress {
	return c.progress.computeRows(c.tree.RowsUnder(n))
}

// Checked reports a row's state.
func (c *Checklist) Checked(id quest.ItemID) (bool, error) {
	r, ok := c.tree.Row(id)
	if !ok {
		return false, ErrUnknownItem
	}
	return c.surface.Checked(r.Node), nil
}

// SetChecked changes a row through the same change notification a user
// toggle fires, which persists progress.
func (c *Checklist) SetChecked(id quest.ItemID, checked bool) error {
	r, ok := c.tree.Row(id)
	if !ok {
		return ErrUnknownItem
	}
	if c.surface.Checked(r.Node) == checked {
		return nil
	}
	c.surface.SetChecked(r.Node, checked)
	c.surface.Dispatch(r.Node)
	return nil
}

// ToggleSection flips every rendered section named category and persists.
func (c *Checklist) ToggleSection(category string) error {
	found := false
	for _, s := range c.tree.Sections {
		if s.Category == category {
			applyExpanded(c.surface, c.expansion.Options, s.Node, !c.surface.Expanded(s.Node))
			found = true
		}
	}
	if !found {
		return ErrUnknownCategory
	}
	return c.expansion.Save(c.tree)
}

// AllExpanded reports the toggle-all flag.
func (c *Checklist) AllExpanded() bool { return c.expansion.AllExpanded() }

// ToggleAll expands or collapses every section.
func (c *Checklist) ToggleAll() error { return c.expansion.ToggleAll(c.tree) }

// ReloadProgress re-applies persisted progress, picking up writes made by
// other processes.
func (c *Checklist) ReloadProgress() { c.progress.Restore(c.tree) }

// Export writes the export document.
func (c *Checklist) Export(w io.Writer) error { return c.gateway.Export(c.tree, w) }

// Import applies an import document read from r.
func (c *Checklist) Import(r io.Reader) error { return c.gateway.ImportFrom(c.tree, r) }

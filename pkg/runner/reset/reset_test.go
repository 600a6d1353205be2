package reset

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
	"tableflip.dev/questlog/pkg/store"
)

const questDoc = `{
  "Main Quest": [{"name":"Deliver the Amulet","desc":"Weynon Priory."},{"name":"Find the Heir"}],
  "Guilds": {"Fighters Guild": [{"name":"A Rat Problem"}]}
}`

func newApp(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(&store.FileConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return &app.Service{
		Loader:      quest.Static(questDoc),
		Persistence: p,
		Options:     checklist.DefaultRenderOptions(),
		Logger:      log.New(&bytes.Buffer{}),
		ExportName:  "oblivion-progress.json",
	}
}

func TestResetConfirmed(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)
	c, _, err := a.OpenHeadless(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.SetChecked("main-quest-0", true); err != nil {
		t.Fatalf("check: %v", err)
	}

	r := &Reset{App: a, Confirm: func() (bool, error) { return true, nil }, Out: &bytes.Buffer{}}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := a.Persistence.Read(store.ProgressKey); err != store.ErrNotFound {
		t.Fatalf("expected progress erased, got %v", err)
	}
}

func TestResetDeclinedKeepsState(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)
	_ = a.Persistence.Write(store.ProgressKey, []byte(`{"main-quest-0":true}`))

	var out bytes.Buffer
	r := &Reset{App: a, Confirm: func() (bool, error) { return false, nil }, Out: &out}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := a.Persistence.Read(store.ProgressKey); err != nil {
		t.Fatalf("progress should survive: %v", err)
	}
	if out.String() != "Reset cancelled\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

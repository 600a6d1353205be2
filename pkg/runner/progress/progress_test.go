package progress

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
	"tableflip.dev/questlog/pkg/store"
)

const questDoc = `{
  "Main Quest": [{"name":"Deliver the Amulet"},{"name":"Find the Heir"}],
  "Guilds": {"Fighters Guild": [{"name":"A Rat Problem"}]}
}`

func newApp(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(&store.FileConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := p.Write(store.ProgressKey, []byte(`{"fighters-guild-0":true}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &app.Service{
		Loader:      quest.Static(questDoc),
		Persistence: p,
		Options:     checklist.DefaultRenderOptions(),
		Logger:      log.New(&bytes.Buffer{}),
	}
}

func TestProgressTable(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	if err := (&Progress{App: newApp(t), Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("progress: %v", err)
	}
	for _, want := range []string{"Main Quest (2)", "  Fighters Guild (1)", "Total"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestProgressJSONDepth(t *testing.T) {
	var out bytes.Buffer
	if err := (&Progress{App: newApp(t), Depth: 1, JSON: true, Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("progress: %v", err)
	}
	s := out.String()
	if got := gjson.Get(s, "sections.#").Int(); got != 2 {
		t.Fatalf("expected 2 top-level sections, got %d in %s", got, s)
	}
	if got := gjson.Get(s, `sections.#(category=="Guilds").percent`).Int(); got != 100 {
		t.Fatalf("expected Guilds complete, got %d", got)
	}
	if got := gjson.Get(s, "progress.percent").Int(); got != 33 {
		t.Fatalf("expected 33%%, got %d", got)
	}
}

package list

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

func TestListPrintsTree(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	l := &List{App: newApp(t), All: true, ShowID: true, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Main Quest (2)", "Fighters Guild (1)", "fighters-guild-0", "[ ] A Rat Problem"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestListJSON(t *testing.T) {
	var out bytes.Buffer
	l := &List{App: newApp(t), JSON: true, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := gjson.Get(out.String(), "sections.#").Int(); got != 3 {
		t.Fatalf("expected 3 sections, got %d", got)
	}
	if got := gjson.Get(out.String(), "progress.total").Int(); got != 3 {
		t.Fatalf("expected total 3, got %d", got)
	}
}

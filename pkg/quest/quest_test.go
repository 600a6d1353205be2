package quest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `{
  "A": [{"name":"Q1","desc":"d1"},{"name":"Q2","desc":"d2"}],
  "B": {"C":[{"name":"Q3","desc":"d3"}]}
}`

func mustParse(t *testing.T, doc string) *Document {
	t.Helper()
	d, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestBuildCountsScenario(t *testing.T) {
	nodes := Build(mustParse(t, sampleDoc))
	if len(nodes) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(nodes))
	}
	a, b := nodes[0], nodes[1]
	if a.Name != "A" || a.Kind != Leaf || a.Count != 2 {
		t.Fatalf("unexpected A: %+v", a)
	}
	if b.Name != "B" || b.Kind != Branch || b.Count != 1 {
		t.Fatalf("unexpected B: %+v", b)
	}
	if len(b.Children) != 1 || b.Children[0].Name != "C" || b.Children[0].Count != 1 {
		t.Fatalf("unexpected B children: %+v", b.Children)
	}
	if got := a.Items[1]; got.Name != "Q2" || got.Desc != "d2" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestBuildCountMatchesLeaves(t *testing.T) {
	doc := `{
	  "Main Quest (12)": {
	    "Act I": {"Kvatch": [{"name":"a"},{"name":"b"}], "Weynon": [{"name":"c"}]},
	    "Act II": [{"name":"d"}],
	    "Empty": []
	  },
	  "Notes": "free text",
	  "Guilds": {"Fighters": {"Deep": {"Deeper": [{"name":"e"},{"name":"f"},{"name":"g"}]}}}
	}`
	nodes := Build(mustParse(t, doc))

	var leaves func(n *Node) int
	leaves = func(n *Node) int {
		total := len(n.Items)
		for _, c := range n.Children {
			total += leaves(c)
		}
		return total
	}
	Walk(nodes, func(n *Node, _ int) {
		if got := leaves(n); got != n.Count {
			t.Errorf("%s: count %d, leaves %d", n.Name, n.Count, got)
		}
	})

	if nodes[0].DisplayName != "Main Quest" {
		t.Fatalf("expected suffix stripped, got %q", nodes[0].DisplayName)
	}
	if nodes[0].Header() != "Main Quest (4)" {
		t.Fatalf("unexpected header %q", nodes[0].Header())
	}
	if nodes[1].Kind != Label || nodes[1].Count != 0 || nodes[1].Header() != "Notes" {
		t.Fatalf("expected label-only fallback, got %+v", nodes[1])
	}
}

func TestBuildKeepsSourceOrder(t *testing.T) {
	nodes := Build(mustParse(t, `{"zeta":[],"alpha":[],"mid":[]}`))
	var names []string
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	if got := strings.Join(names, ","); got != "zeta,alpha,mid" {
		t.Fatalf("order not preserved: %s", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"Daedric Quests (15)": "Daedric Quests",
		"Daedric Quests(15)":  "Daedric Quests(15)",
		"Quests (x)":          "Quests (x)",
		"(3) Quests":          "(3) Quests",
		"Plain":               "Plain",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIdentify(t *testing.T) {
	if got := Identify("Main Quest", 0); got != "main-quest-0" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := Identify("Thieves  Guild\tJobs", 3); got != "thieves-guild-jobs-3" {
		t.Fatalf("whitespace runs not collapsed: %q", got)
	}
	if got := Identify("Shivering\u00a0Isles", 1); got != "shivering-isles-1" {
		t.Fatalf("non-breaking space not treated as whitespace: %q", got)
	}
	if Identify("A", 1) != Identify("A", 1) {
		t.Fatal("identify not deterministic")
	}
	seen := map[ItemID]int{}
	for i := 0; i < 50; i++ {
		id := Identify("Main Quest", i)
		if prev, ok := seen[id]; ok {
			t.Fatalf("index %d collides with %d", i, prev)
		}
		seen[id] = i
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		`{not json`,
		`[1,2,3]`,
		`"quests"`,
		`{"A":[1,2]}`,
		`{"A":{"B":[{"name":5}]}}`,
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c)); err == nil {
			t.Errorf("expected %q to be rejected", c)
		}
	}
}

func TestSourceLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quests.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	doc, err := Source{Location: srv.URL + "/quests.json"}.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 categories, got %d", doc.Len())
	}

	_, err = Source{Location: srv.URL + "/missing.json"}.Load(context.Background())
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !strings.Contains(le.Error(), "HTTP 404") {
		t.Fatalf("expected status in error, got %q", le.Error())
	}
}

func TestSourceLoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "quests.json")
	bad := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(good, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{"A": [`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := (Source{Location: good}).Load(context.Background()); err != nil {
		t.Fatalf("load good: %v", err)
	}
	var le *LoadError
	if _, err := (Source{Location: bad}).Load(context.Background()); !errors.As(err, &le) {
		t.Fatalf("expected LoadError for malformed file, got %v", err)
	}
	if _, err := (Source{Location: filepath.Join(dir, "nope.json")}).Load(context.Background()); !errors.As(err, &le) {
		t.Fatalf("expected LoadError for missing file, got %v", err)
	}
}

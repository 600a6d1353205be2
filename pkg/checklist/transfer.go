package checklist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// Gateway moves progress in and out of the checklist as JSON documents
// shaped like the persisted progress record.
type Gateway struct {
	Progress *ProgressStore
}

// Export writes the current progress, pretty printed.
func (g *Gateway) Export(t *Tree, w io.Writer) error {
	data, err := json.Marshal(g.Progress.Snapshot(t))
	if err != nil {
		return err
	}
	if _, err := w.Write(indent(data)); err != nil {
		return fmt.Errorf("checklist: export: %w", err)
	}
	return nil
}

// Import checks each row whose id is truthy in data and unchecks the rest,
// then saves. Invalid JSON returns an ImportParseError and changes nothing.
func (g *Gateway) Import(t *Tree, data []byte) error {
	doc, err := parseImport(data)
	if err != nil {
		return &ImportParseError{Err: err}
	}
	s := g.Progress.Surface
	for _, r := range t.Rows {
		s.SetChecked(r.Node, truthy(doc[string(r.ID)]))
	}
	return g.Progress.Save(t)
}

// ImportFrom reads the document from r.
func (g *Gateway) ImportFrom(t *Tree, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("checklist: read import: %w", err)
	}
	return g.Import(t, data)
}

// parseImport accepts any JSON value except null. Non-object documents hold
// no ids, so every row ends up unchecked.
func parseImport(data []byte) (map[string]gjson.Result, error) {
	doc, err := parseObject(data)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, errNotObject) {
		return nil, err
	}
	if gjson.ParseBytes(data).Type == gjson.Null {
		return nil, errors.New("document is null")
	}
	return map[string]gjson.Result{}, nil
}

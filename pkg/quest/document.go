// Package quest loads quest documents and turns them into the category tree
// the checklist renders.
package quest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Item is a single checkable quest. Items carry no identity of their own; see
// Identify.
type Item struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Document is a parsed quest document. Categories keep the order they have in
// the source, which is why the raw JSON is walked with gjson instead of being
// decoded into a map.
type Document struct {
	root gjson.Result
}

// Parse validates data as a quest document.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("quest: document is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("quest: document must be an object, got %s", kindOf(root))
	}

	var decoded interface{}
	dec := json.NewDecoder(strings.NewReader(root.Raw))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("quest: decode document: %w", err)
	}
	if err := validateDocument(decoded); err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Len reports the number of top-level categories.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	d.root.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

func kindOf(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	}
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	default:
		return "null"
	}
}

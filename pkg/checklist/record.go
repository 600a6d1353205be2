package checklist

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Record is an ordered mapping of keys to booleans. It serializes as a JSON
// object whose keys keep insertion order; setting an existing key keeps its
// position and replaces the value.
type Record struct {
	keys []string
	vals map[string]bool
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]bool)}
}

func (r *Record) Set(key string, v bool) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

func (r *Record) Get(key string) (value, ok bool) {
	value, ok = r.vals[key]
	return value, ok
}

func (r *Record) Keys() []string { return append([]string(nil), r.keys...) }

func (r *Record) Len() int { return len(r.keys) }

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatBool(r.vals[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExpansionRecord is the persisted expansion state.
type ExpansionRecord struct {
	Sections    *Record
	AllExpanded bool
}

// MarshalJSON implements json.Marshaler.
func (e ExpansionRecord) MarshalJSON() ([]byte, error) {
	sections := e.Sections
	if sections == nil {
		sections = NewRecord()
	}
	sb, err := sections.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"sections":`)
	buf.Write(sb)
	buf.WriteString(`,"allExpanded":`)
	buf.WriteString(strconv.FormatBool(e.AllExpanded))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// indent pretty prints compact JSON with two-space indentation.
func indent(compact []byte) []byte {
	return pretty.PrettyOptions(compact, &pretty.Options{Width: 80, Indent: "  "})
}

var errNotObject = errors.New("not a JSON object")

// parseObject parses data as a JSON object. Later duplicate keys win.
func parseObject(data []byte) (map[string]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("malformed JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errNotObject
	}
	out := make(map[string]gjson.Result)
	root.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value
		return true
	})
	return out, nil
}

// truthy applies JavaScript's boolean coercion to a JSON value, the rule
// saved and exported progress files were written against.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		return true
	default:
		return false
	}
}

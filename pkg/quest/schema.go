package quest

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchemaJSON describes the recursive shape of a quest document.
// "items" only constrains arrays and "additionalProperties" only objects, so
// scalar category values still pass and fall back to label-only headers.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": { "$ref": "#/$defs/node" },
  "$defs": {
    "node": {
      "items": { "$ref": "#/$defs/item" },
      "additionalProperties": { "$ref": "#/$defs/node" }
    },
    "item": {
      "type": "object",
      "properties": {
        "name": { "type": "string" },
        "desc": { "type": "string" }
      }
    }
  }
}`

var documentSchema = jsonschema.MustCompileString("quest-document.json", documentSchemaJSON)

func validateDocument(v interface{}) error {
	err := documentSchema.Validate(v)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("quest: validate document: %w", err)
	}
	var msgs []string
	collectSchemaErrors(&msgs, ve)
	return fmt.Errorf("quest: invalid document: %s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(msgs *[]string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(msgs, cause)
	}
}

package quest

import (
	"fmt"
	"regexp"
	"strings"
)

// ItemID keys a quest's checked state in storage.
//
// IDs are positional: renaming a category or reordering its items changes
// them, and previously saved progress for those items is no longer found.
type ItemID string

// Matches the whitespace class of browser regular expressions, which saved
// progress files were keyed with.
var whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r \p{Z}\x{FEFF}]+`)

// Identify derives the ID of the index'th item of category.
func Identify(category string, index int) ItemID {
	raw := fmt.Sprintf("%s-%d", category, index)
	return ItemID(strings.ToLower(whitespaceRun.ReplaceAllString(raw, "-")))
}

package format

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewItemID returns a short opaque identifier for line items and custom
// fields. Items are keyed by it in clients and lookups; it carries no
// ordering or computational meaning.
func NewItemID() string {
	return strings.ToLower(ulid.Make().String())
}

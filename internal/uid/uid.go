package uid

import (
	"strings"

	"github.com/google/uuid"
)

// New returns an opaque unique id, optionally namespaced with a prefix such
// as "slot_" or "visit_". Ids are never reused and carry no ordering.
func New(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

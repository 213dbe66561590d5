package textutil

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	displayPolicyOnce sync.Once
	displayPolicy     *bluemonday.Policy
)

// SanitizeDisplay strips markup from denormalised display text (product
// names, categories) before it is stored. Persisted snapshots are rendered
// without a catalog refetch, so the scrub has to happen once on entry.
func SanitizeDisplay(value string) string {
	displayPolicyOnce.Do(func() {
		displayPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(displayPolicy.Sanitize(value))
}

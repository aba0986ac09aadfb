package lookup

import (
	"strings"

	"github.com/poiesic/mailidx/core"
)

// ResolvePublisher maps thread labels to a publisher id using the preloaded
// lookup table. Labels are checked in their given order and the first
// lowercase match wins; remaining labels are not consulted. Returns
// core.PublisherUnknown when nothing matches.
func ResolvePublisher(labels []string, table map[string]string) string {
	for _, label := range labels {
		if id, ok := table[strings.ToLower(label)]; ok {
			return id
		}
	}
	return core.PublisherUnknown
}

package lookup

import (
	"testing"

	"github.com/poiesic/mailidx/core"
	"github.com/stretchr/testify/assert"
)

func TestResolvePublisher(t *testing.T) {
	table := map[string]string{
		"finance":   "pub_002",
		"tech-news": "pub_007",
	}

	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{
			name:   "first match wins",
			labels: []string{"Finance", "Tech-News"},
			want:   "pub_002",
		},
		{
			name:   "label order decides, not table order",
			labels: []string{"Tech-News", "Finance"},
			want:   "pub_007",
		},
		{
			name:   "case-insensitive label match",
			labels: []string{"FINANCE"},
			want:   "pub_002",
		},
		{
			name:   "unmatched labels fall through",
			labels: []string{"Personal", "Receipts"},
			want:   core.PublisherUnknown,
		},
		{
			name:   "no labels",
			labels: nil,
			want:   core.PublisherUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePublisher(tt.labels, table))
		})
	}
}

func TestResolvePublisher_EmptyTable(t *testing.T) {
	assert.Equal(t, core.PublisherUnknown, ResolvePublisher([]string{"Finance"}, nil))
}

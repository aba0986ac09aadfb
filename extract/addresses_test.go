package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanAddresses(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "bare address",
			value: "user@example.com",
			want:  []string{"user@example.com"},
		},
		{
			name:  "bracketed address with display name",
			value: "Logan Lorenz <Logan.Lorenz@OfflineStudio.com>",
			want:  []string{"logan.lorenz@offlinestudio.com"},
		},
		{
			name:  "bracketed and bare coexisting",
			value: "Alice <alice@example.com>, bob@example.com",
			want:  []string{"alice@example.com", "bob@example.com"},
		},
		{
			name:  "multiple bracketed recipients",
			value: "A <a@x.com>, B <b@y.org>, C <c@z.net>",
			want:  []string{"a@x.com", "b@y.org", "c@z.net"},
		},
		{
			name:  "uppercase is lowered",
			value: "ADMIN@EXAMPLE.COM",
			want:  []string{"admin@example.com"},
		},
		{
			name:  "no address",
			value: "undisclosed recipients",
			want:  nil,
		},
		{
			name:  "empty value",
			value: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanAddresses(tt.value))
		})
	}
}

func TestAddressSet_Deduplicates(t *testing.T) {
	set := newAddressSet()
	set.addFrom("Alice <alice@example.com>")
	set.addFrom("alice@example.com, bob@example.com")
	set.addFrom("ALICE@example.com")

	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, set.slice())
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadRecord_HasParticipant(t *testing.T) {
	record := &ThreadRecord{
		Participants: []string{"a@example.com", "b@example.com"},
	}

	assert.True(t, record.HasParticipant("a@example.com"))
	assert.False(t, record.HasParticipant("A@example.com"))
	assert.False(t, record.HasParticipant("c@example.com"))

	empty := &ThreadRecord{}
	assert.False(t, empty.HasParticipant("a@example.com"))
}

func TestRunStateMUS_RoundTrip(t *testing.T) {
	state := RunState{
		Watermark:   1760000000,
		Processed:   12,
		Errored:     3,
		Total:       20,
		CompletedAt: 1760003600,
	}

	buf := make([]byte, RunStateMUS.Size(state))
	n := RunStateMUS.Marshal(state, buf)
	require.Equal(t, len(buf), n)

	decoded, n, err := RunStateMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, state, decoded)
}

func TestRunStateMUS_UnmarshalTruncated(t *testing.T) {
	state := RunState{Watermark: 1760000000, Total: 5}
	buf := make([]byte, RunStateMUS.Size(state))
	RunStateMUS.Marshal(state, buf)

	_, _, err := RunStateMUS.Unmarshal(buf[:1])
	assert.Error(t, err)
}

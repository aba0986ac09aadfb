package extract

import (
	"testing"

	"github.com/poiesic/mailidx/core"
	"github.com/poiesic/mailidx/mailstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildThreadRecord_EmptyThread(t *testing.T) {
	record := BuildThreadRecord("t-empty", nil, nil)

	require.NotNil(t, record)
	assert.Equal(t, "t-empty", record.ThreadID)
	assert.Equal(t, "", record.Subject)
	assert.Equal(t, "", record.FullText)
	assert.Empty(t, record.Participants)
	assert.Equal(t, int64(0), record.LastMessage)
	assert.Equal(t, core.PublisherUnknown, record.PublisherID)
}

func TestBuildThreadRecord_SubjectAndTimestamps(t *testing.T) {
	msgs := []mailstore.Message{
		{Subject: "Mula Daily Digest - Oct 1", Body: "first", Timestamp: 100},
		{Subject: "Re: Mula Daily Digest - Oct 1", Body: "second", Timestamp: 200},
	}

	record := BuildThreadRecord("t-1", msgs, nil)

	assert.Equal(t, "Mula Daily Digest - Oct 1", record.Subject)
	assert.Equal(t, int64(200), record.LastMessage)
	assert.Equal(t, "first\n\nsecond", record.FullText)
}

func TestBuildThreadRecord_AccumulatesPastEmptyMessages(t *testing.T) {
	msgs := []mailstore.Message{
		{Body: "hello", Timestamp: 1},
		{Body: "", Timestamp: 2}, // nothing extractable, must not abort
		{Body: "world", Timestamp: 3},
	}

	record := BuildThreadRecord("t-2", msgs, nil)

	assert.Equal(t, "hello\n\nworld", record.FullText)
	assert.Equal(t, int64(3), record.LastMessage)
}

func TestBuildThreadRecord_Participants(t *testing.T) {
	msgs := []mailstore.Message{
		{
			Headers: map[string]string{
				"From": "Digest Bot <bot@mula.news>",
				"To":   "Logan Lorenz <logan.lorenz@offlinestudio.com>",
				"Cc":   "ops@offlinestudio.com, Bot <bot@mula.news>",
			},
			Sender:    "bot@mula.news",
			Recipient: "LOGAN.LORENZ@offlinestudio.com",
			Timestamp: 10,
		},
		{
			Headers: map[string]string{
				"Bcc": "audit@offlinestudio.com",
			},
			Timestamp: 20,
		},
		{
			// nil header map is valid
			Sender:    "extra@partner.io",
			Timestamp: 30,
		},
	}

	record := BuildThreadRecord("t-3", msgs, nil)

	assert.Equal(t, []string{
		"bot@mula.news",
		"logan.lorenz@offlinestudio.com",
		"ops@offlinestudio.com",
		"audit@offlinestudio.com",
		"extra@partner.io",
	}, record.Participants)
}

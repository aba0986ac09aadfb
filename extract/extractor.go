package extract

import (
	"log/slog"
	"strings"

	"github.com/poiesic/mailidx/core"
	"github.com/poiesic/mailidx/mailstore"
)

// participantHeaders are the header fields scanned for addresses, in
// addition to the store's sender/recipient accessor strings.
var participantHeaders = []string{"From", "To", "Cc", "Bcc"}

// BuildThreadRecord normalizes one conversation into a fully populated
// ThreadRecord. Extraction is best effort: a message that yields nothing
// never aborts the remaining messages or discards already-accumulated text,
// and every field defaults to its zero value rather than being absent.
func BuildThreadRecord(threadID string, messages []mailstore.Message, logger *slog.Logger) *core.ThreadRecord {
	if logger == nil {
		logger = slog.Default()
	}

	record := &core.ThreadRecord{
		ThreadID:    threadID,
		PublisherID: core.PublisherUnknown,
	}
	if len(messages) == 0 {
		logger.Debug("thread has no messages", "thread", threadID)
		return record
	}

	record.Subject = messages[0].Subject
	record.LastMessage = messages[len(messages)-1].Timestamp

	participants := newAddressSet()
	var bodies []string
	for i := range messages {
		msg := &messages[i]

		if msg.Body != "" {
			bodies = append(bodies, msg.Body)
		}

		// Each source string is scanned independently so one malformed
		// header cannot shadow the others.
		for _, name := range participantHeaders {
			participants.addFrom(msg.Header(name))
		}
		participants.addFrom(msg.Sender)
		participants.addFrom(msg.Recipient)
	}

	record.FullText = strings.TrimSpace(strings.Join(bodies, "\n\n"))
	record.Participants = participants.slice()
	return record
}

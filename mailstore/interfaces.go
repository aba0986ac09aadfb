package mailstore

import (
	"context"
	"time"
)

// Message is one mail message inside a thread, flattened to the fields the
// extraction layer consumes. Header lookups that are missing simply yield
// empty strings.
type Message struct {
	// Subject of the individual message.
	Subject string

	// Body is the plain-text body, already decoded.
	Body string

	// Headers holds raw header values keyed by canonical name
	// (From, To, Cc, Bcc). A nil map is valid.
	Headers map[string]string

	// Sender and Recipient are the store's own accessor-derived address
	// strings, scanned independently of the headers.
	Sender    string
	Recipient string

	// Timestamp is the message time in Unix seconds.
	Timestamp int64
}

// Header returns the named header value, or "" when absent.
func (m *Message) Header(name string) string {
	if m.Headers == nil {
		return ""
	}
	return m.Headers[name]
}

// Thread is one conversation as returned by a search: a stable id, the
// messages in thread order, and the labels attached at query time.
type Thread struct {
	ID       string
	Messages []Message
	Labels   []string
}

// ThreadSource searches the mail store for candidate threads.
// Implementations must return threads in the store's own order; the pipeline
// processes them strictly sequentially.
type ThreadSource interface {
	// Search returns every thread whose subject matches subjectPrefix and
	// whose activity is at or after the lower bound. A zero time queries
	// from the beginning of the mailbox.
	Search(ctx context.Context, subjectPrefix string, after time.Time) ([]Thread, error)
}

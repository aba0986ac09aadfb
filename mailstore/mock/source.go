package mock

import (
	"context"
	"strings"
	"time"

	"github.com/poiesic/mailidx/mailstore"
)

// MockSource is a test double for mailstore.ThreadSource.
// It serves canned threads, filtered the way the real store would filter:
// by subject prefix and lower-bound activity time.
type MockSource struct {
	// Threads are the canned conversations to serve.
	Threads []mailstore.Thread

	// SearchFunc is called instead of the default behavior if set.
	SearchFunc func(ctx context.Context, subjectPrefix string, after time.Time) ([]mailstore.Thread, error)

	callCount int
}

// NewMockSource creates a mock source serving the given threads.
func NewMockSource(threads ...mailstore.Thread) *MockSource {
	return &MockSource{Threads: threads}
}

// Search filters the canned threads by subject prefix and activity window.
func (m *MockSource) Search(ctx context.Context, subjectPrefix string, after time.Time) ([]mailstore.Thread, error) {
	m.callCount++

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, subjectPrefix, after)
	}

	var out []mailstore.Thread
	for _, thread := range m.Threads {
		if len(thread.Messages) == 0 {
			continue
		}
		first := thread.Messages[0]
		last := thread.Messages[len(thread.Messages)-1]
		if subjectPrefix != "" && !strings.Contains(first.Subject, subjectPrefix) {
			continue
		}
		if !after.IsZero() && last.Timestamp < after.Unix() {
			continue
		}
		out = append(out, thread)
	}
	return out, nil
}

// CallCount returns the number of Search invocations.
func (m *MockSource) CallCount() int {
	return m.callCount
}

package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// SSEStream writes server-sent event frames for one /sse subscriber.
type SSEStream struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	mu      sync.Mutex
	closed  bool
	onClose func()
	once    sync.Once
}

// NewSSEStream creates a new SSE stream
func NewSSEStream(w http.ResponseWriter, f http.Flusher, onClose ...func()) *SSEStream {
	var closeHook func()
	if len(onClose) > 0 {
		closeHook = onClose[0]
	}
	return &SSEStream{
		writer:  w,
		flusher: f,
		onClose: closeHook,
	}
}

// SendEvent sends one named event whose data line carries text verbatim.
func (t *SSEStream) SendEvent(event, data string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("stream is closed")
	}

	frame := fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)
	if err := t.writeLocked(frame); err != nil {
		return fmt.Errorf("failed to write SSE event: %w", err)
	}
	return nil
}

// SendComment writes one SSE comment frame (":" prefixed lines).
func (t *SSEStream) SendComment(comment string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("stream is closed")
	}

	comment = strings.ReplaceAll(comment, "\r\n", "\n")
	comment = strings.ReplaceAll(comment, "\r", "\n")
	comment = strings.ReplaceAll(comment, "\n", "\n: ")
	frame := fmt.Sprintf(": %s\n\n", comment)
	if err := t.writeLocked(frame); err != nil {
		return fmt.Errorf("failed to write SSE comment: %w", err)
	}
	return nil
}

func (t *SSEStream) writeLocked(payload string) error {
	_, err := t.writer.Write([]byte(payload))
	if err != nil {
		return err
	}
	t.flusher.Flush()
	return nil
}

// Close closes the stream and runs the close hook once
func (t *SSEStream) Close() error {
	t.mu.Lock()
	wasOpen := !t.closed
	if wasOpen {
		t.closed = true
	}
	t.mu.Unlock()

	if wasOpen && t.onClose != nil {
		t.once.Do(t.onClose)
	}
	return nil
}

// IsClosed returns true if the stream is closed
func (t *SSEStream) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

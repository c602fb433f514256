package http

import (
	"sync"
)

// StreamRegistry tracks open /sse event streams so shutdown can end them.
// It carries no request state; dispatch never touches it.
type StreamRegistry struct {
	streams map[uint64]*SSEStream
	nextID  uint64
	mu      sync.RWMutex
}

// NewStreamRegistry creates a new stream registry
func NewStreamRegistry() *StreamRegistry {
	return &StreamRegistry{
		streams: make(map[uint64]*SSEStream),
	}
}

// Add registers a stream and returns its registry id
func (r *StreamRegistry) Add(stream *SSEStream) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.streams[r.nextID] = stream
	return r.nextID
}

// Remove drops a stream from the registry
func (r *StreamRegistry) Remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.streams, id)
}

// Count returns the number of open streams
func (r *StreamRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.streams)
}

// CloseAll closes every registered stream and empties the registry
func (r *StreamRegistry) CloseAll() {
	r.mu.Lock()
	streams := make([]*SSEStream, 0, len(r.streams))
	for _, stream := range r.streams {
		streams = append(streams, stream)
	}
	r.streams = make(map[uint64]*SSEStream)
	r.mu.Unlock()

	// Close outside the lock; close hooks may call back into Remove.
	for _, stream := range streams {
		stream.Close()
	}
}

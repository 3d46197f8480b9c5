package mocks

import (
	"github.com/anoveskey1/evbpmusic-backend/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// BytesResults is a queue of results to return from Bytes
	BytesResults [][]byte
	bytesIndex   int

	// fill is used once the queue is exhausted so results stay distinct
	fill byte
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Bytes returns the next queued result, or n copies of an incrementing byte if none remain
func (r *MockRandom) Bytes(n int) []byte {
	if r.bytesIndex < len(r.BytesResults) {
		result := r.BytesResults[r.bytesIndex]
		r.bytesIndex++
		return result
	}
	r.fill++
	b := make([]byte, n)
	for i := range b {
		b[i] = r.fill
	}
	return b
}

// QueueBytes adds values to the Bytes result queue
func (r *MockRandom) QueueBytes(values ...[]byte) {
	r.BytesResults = append(r.BytesResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.BytesResults = nil
	r.bytesIndex = 0
	r.fill = 0
}

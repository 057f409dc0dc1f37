package lockout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreLocksAfterMaxAttempts(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(3, time.Minute)
	s.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		s.RecordFailure("10.0.0.1")
		locked, _ := s.IsLocked("10.0.0.1")
		assert.False(t, locked)
	}
	s.RecordFailure("10.0.0.1")
	locked, left := s.IsLocked("10.0.0.1")
	assert.True(t, locked)
	assert.Equal(t, time.Minute, left)

	other, _ := s.IsLocked("10.0.0.2")
	assert.False(t, other)

	clock = clock.Add(61 * time.Second)
	locked, _ = s.IsLocked("10.0.0.1")
	assert.False(t, locked)

	// The count restarts once the cooldown is over.
	s.RecordFailure("10.0.0.1")
	locked, _ = s.IsLocked("10.0.0.1")
	assert.False(t, locked)
}

func TestMemoryStoreSuccessClears(t *testing.T) {
	s := NewMemoryStore(2, time.Minute)
	s.RecordFailure("k")
	s.RecordSuccess("k")
	s.RecordFailure("k")
	locked, _ := s.IsLocked("k")
	assert.False(t, locked)
}

func TestMemoryStoreDisabled(t *testing.T) {
	s := NewMemoryStore(0, time.Minute)
	for i := 0; i < 10; i++ {
		s.RecordFailure("k")
	}
	locked, _ := s.IsLocked("k")
	assert.False(t, locked)
}

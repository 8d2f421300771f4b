package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	delivered []Message
	err       error
}

func (s *recordingSink) Deliver(msg Message) error {
	s.delivered = append(s.delivered, msg)
	return s.err
}

func TestNotifyDeliversAndDebounces(t *testing.T) {
	now := time.Now()
	sink := &recordingSink{}
	n := New(sink, WithClock(func() time.Time { return now }))

	userID := uuid.New()

	assert.True(t, n.Success(userID, "Application submitted", "first"))
	assert.False(t, n.Success(userID, "Application submitted", "second"), "identical notification inside the window is suppressed")
	assert.Len(t, sink.delivered, 1)
}

func TestNotifyDeliversAgainAfterWindow(t *testing.T) {
	now := time.Now()
	sink := &recordingSink{}
	n := New(sink, WithClock(func() time.Time { return now }))

	userID := uuid.New()

	assert.True(t, n.Error(userID, "Status update failed", "conflict"))
	now = now.Add(DefaultDebounceWindow + time.Millisecond)
	assert.True(t, n.Error(userID, "Status update failed", "conflict"))
	assert.Len(t, sink.delivered, 2)
}

func TestExpiredDebounceEntriesArePruned(t *testing.T) {
	now := time.Now()
	n := New(&recordingSink{}, WithClock(func() time.Time { return now }))

	u1 := uuid.New()
	u2 := uuid.New()
	assert.True(t, n.Success(u1, "first", "body"))
	assert.True(t, n.Success(u2, "second", "body"))

	n.mu.Lock()
	assert.Len(t, n.lastShown, 2)
	n.mu.Unlock()

	now = now.Add(DefaultDebounceWindow + time.Second)
	assert.True(t, n.Success(u1, "third", "body"))

	// The two stale entries were swept on insert; only the fresh key remains.
	n.mu.Lock()
	assert.Len(t, n.lastShown, 1)
	_, kept := n.lastShown[u1.String()+"|"+CategorySuccess+"|third"]
	n.mu.Unlock()
	assert.True(t, kept)
}

func TestDebounceKeySeparatesUsersCategoriesAndTitles(t *testing.T) {
	now := time.Now()
	sink := &recordingSink{}
	n := New(sink, WithClock(func() time.Time { return now }))

	u1, u2 := uuid.New(), uuid.New()

	assert.True(t, n.Success(u1, "Application submitted", "x"))
	assert.True(t, n.Success(u2, "Application submitted", "x"), "other user is not debounced")
	assert.True(t, n.Error(u1, "Application submitted", "x"), "other category is not debounced")
	assert.True(t, n.Success(u1, "Application reviewed", "x"), "other title is not debounced")
	assert.Len(t, sink.delivered, 4)
}

func TestSinkFailureIsSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("insert failed")}
	n := New(sink)

	// Delivery is fire-and-forget; a failing sink must not surface.
	assert.True(t, n.Info(uuid.New(), "FYI", "body"))
	assert.Len(t, sink.delivered, 1)
}

func TestNilSinkStillDebounces(t *testing.T) {
	now := time.Now()
	n := New(nil, WithClock(func() time.Time { return now }))

	userID := uuid.New()
	assert.True(t, n.Warning(userID, "Heads up", "a"))
	assert.False(t, n.Warning(userID, "Heads up", "b"))
}

func TestCustomWindow(t *testing.T) {
	now := time.Now()
	sink := &recordingSink{}
	n := New(sink, WithWindow(10*time.Second), WithClock(func() time.Time { return now }))

	userID := uuid.New()
	assert.True(t, n.Success(userID, "T", "a"))
	now = now.Add(5 * time.Second)
	assert.False(t, n.Success(userID, "T", "b"))
	now = now.Add(6 * time.Second)
	assert.True(t, n.Success(userID, "T", "c"))
}

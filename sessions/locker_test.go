package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLockerSerializesSameSession(t *testing.T) {
	l := NewLocker()

	unlock := l.Lock("abc")

	acquired := make(chan struct{})
	go func() {
		u := l.Lock("abc")
		u()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired after release")
	}
}

func TestLockerDistinctSessionsDoNotContend(t *testing.T) {
	l := NewLocker()

	unlockA := l.Lock("abc")
	defer unlockA()

	acquired := make(chan struct{})
	go func() {
		u := l.Lock("def")
		u()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("distinct session blocked by unrelated lock")
	}
}

func TestLockerEvictsReleasedEntries(t *testing.T) {
	l := NewLocker()

	unlockA := l.Lock("abc")
	unlockB := l.Lock("def")

	// A queued waiter keeps the entry alive until it releases too.
	released := make(chan struct{})
	go func() {
		u := l.Lock("abc")
		u()
		close(released)
	}()

	unlockA()
	<-released
	unlockB()

	l.mu.Lock()
	defer l.mu.Unlock()
	require.Empty(t, l.locks)
}

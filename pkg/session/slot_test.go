package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameSlot_LatestWins(t *testing.T) {
	s := newFrameSlot()
	s.publish([]byte{1})
	s.publish([]byte{2})
	s.publish([]byte{3})

	got, ok := s.take()
	require.True(t, ok)
	assert.Equal(t, []byte{3}, got)
	assert.Equal(t, uint64(2), s.dropped())
}

func TestFrameSlot_TakeBlocksUntilPublish(t *testing.T) {
	s := newFrameSlot()
	done := make(chan []byte)
	go func() {
		got, _ := s.take()
		done <- got
	}()

	select {
	case <-done:
		t.Fatal("take returned before publish")
	case <-time.After(20 * time.Millisecond):
	}
	s.publish([]byte{9})
	select {
	case got := <-done:
		assert.Equal(t, []byte{9}, got)
	case <-time.After(time.Second):
		t.Fatal("take did not wake up")
	}
}

func TestFrameSlot_CloseUnblocksAndDrains(t *testing.T) {
	s := newFrameSlot()
	s.publish([]byte{4})
	s.close()
	s.publish([]byte{5}) // ignored after close

	got, ok := s.take()
	require.True(t, ok)
	assert.Equal(t, []byte{4}, got)

	_, ok = s.take()
	assert.False(t, ok)
}

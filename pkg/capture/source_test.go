package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMode(t *testing.T) {
	want := Mode{Width: 256, Height: 192}
	assert.NoError(t, checkMode(want, Mode{Width: 256, Height: 192}))

	err := checkMode(want, Mode{Width: 640, Height: 480})
	require.ErrorIs(t, err, ErrConfigMismatch)
	assert.Contains(t, err.Error(), "requested 256x192, device reports 640x480")
}

func TestReplay_LoopsFrames(t *testing.T) {
	mode := Mode{Width: 2, Height: 1}
	data := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	r, err := NewReplay(data, mode, 2, 0)
	require.NoError(t, err)

	ctx := context.Background()
	var got [][]byte
	for i := 0; i < 3; i++ {
		b, err := r.Read(ctx)
		require.NoError(t, err)
		got = append(got, b)
	}
	assert.Equal(t, [][]byte{{1, 0, 2, 0}, {3, 0, 4, 0}, {1, 0, 2, 0}}, got)
	assert.Equal(t, mode, r.Mode())
}

func TestReplay_PartialTailIsShortRead(t *testing.T) {
	r, err := NewReplay([]byte{1, 0, 2, 0, 9}, Mode{Width: 2, Height: 1}, 2, 0)
	require.NoError(t, err)

	_, err = r.Read(context.Background())
	require.NoError(t, err)
	tail, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, tail)
}

func TestReplay_ClosedAndCancelled(t *testing.T) {
	r, err := NewReplay([]byte{1, 2}, Mode{Width: 1, Height: 1}, 2, time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	r.interval = 0
	require.NoError(t, r.Close())
	_, err = r.Read(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.yuyv")
	require.NoError(t, os.WriteFile(path, []byte{7, 0}, 0o644))

	r, err := OpenReplay(path, Mode{Width: 1, Height: 1}, 2, 0)
	require.NoError(t, err)
	b, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0}, b)

	_, err = OpenReplay(filepath.Join(t.TempDir(), "missing"), Mode{Width: 1, Height: 1}, 2, 0)
	assert.Error(t, err)

	_, err = NewReplay(nil, Mode{Width: 1, Height: 1}, 2, 0)
	assert.Error(t, err)
}

package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_SecondInstanceRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queuebot.lock")

	first := NewFileLock(path)
	require.NoError(t, first.TryLock())
	require.NoError(t, first.TryLock(), "relock by the holder is a no-op")

	second := NewFileLock(path)
	require.ErrorIs(t, second.TryLock(), ErrLocked)

	require.NoError(t, first.Unlock())
	require.NoError(t, second.TryLock())
	assert.NoError(t, second.Unlock())
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	assert.NoError(t, NewFileLock(filepath.Join(t.TempDir(), "x.lock")).Unlock())
}

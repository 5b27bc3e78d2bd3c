package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageInitialState(t *testing.T) {
	s := NewMemoryStorage()
	promised, err := s.LoadPromised()
	require.NoError(t, err)
	assert.Equal(t, int64(0), promised)

	number, value, err := s.LoadAccepted()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), number)
	assert.Equal(t, "", value)
}

func TestMemoryStorageSaveLoadReset(t *testing.T) {
	s := NewMemoryStorage()
	require.NoError(t, s.SavePromised(7))
	require.NoError(t, s.SaveAccepted(5, "foo"))

	promised, _ := s.LoadPromised()
	number, value, _ := s.LoadAccepted()
	assert.Equal(t, int64(7), promised)
	assert.Equal(t, int64(5), number)
	assert.Equal(t, "foo", value)

	s.Reset()
	promised, _ = s.LoadPromised()
	number, value, _ = s.LoadAccepted()
	assert.Equal(t, int64(0), promised)
	assert.Equal(t, int64(-1), number)
	assert.Equal(t, "", value)
}

package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdeck/internal/app/user"
)

func TestReplacePreservesOrder(t *testing.T) {
	s := NewStore()
	records := []user.Record{
		{ID: "3", FirstName: "Cleo"},
		{ID: "1", FirstName: "Ada"},
		{ID: "2", FirstName: "Bob"},
	}

	s.Replace(records)

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "3", snap[0].ID)
	assert.Equal(t, "1", snap[1].ID)
	assert.Equal(t, "2", snap[2].ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Replace([]user.Record{{ID: "1", FirstName: "Ada"}})

	snap := s.Snapshot()
	snap[0].FirstName = "changed"

	fresh := s.Snapshot()
	assert.Equal(t, "Ada", fresh[0].FirstName)
}

func TestAppendAndRemove(t *testing.T) {
	s := NewStore()
	s.Append(user.Record{ID: "1"})
	s.Append(user.Record{ID: "2"})
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Remove("1"))
	assert.False(t, s.Remove("1"))
	assert.Equal(t, 1, s.Len())

	_, ok := s.Get("1")
	assert.False(t, ok)

	r, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, "2", r.ID)
}

func TestGetMissing(t *testing.T) {
	s := NewStore()
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

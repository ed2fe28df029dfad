package store

import (
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s port.KeyValueStore) {
	t.Helper()
	ctx := t.Context()

	_, err := s.Get(ctx, "linode_list")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Put(ctx, "linode_list", []byte(`{"web-1":{"id":1,"status":"Running"}}`)))

	value, err := s.Get(ctx, "linode_list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"web-1":{"id":1,"status":"Running"}}`, string(value))

	require.NoError(t, s.Put(ctx, "linode_list", []byte(`{}`)))

	value, err = s.Get(ctx, "linode_list")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(value))
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "officebot.db"))
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "officebot.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(t.Context(), "linode_list", []byte(`{"db-1":{"id":2}}`)))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	value, err := s.Get(t.Context(), "linode_list")
	require.NoError(t, err)
	assert.Equal(t, `{"db-1":{"id":2}}`, string(value))
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Put(t.Context(), "k", value))

	value[0] = 'x'

	got, err := m.Get(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_StripsSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	writeFile(t, path, "TestUser         AA 000900.00\nEND"+strings.Repeat(" ", 25)+"\n")

	s := Accounts(path)
	records, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"TestUser         AA 000900.00"}, records)
}

func TestLoad_NoSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	writeFile(t, path, "TestUser         AA 000900.00\n")

	records, err := Accounts(path).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestSave_AppendsSentinelAtStoreWidth(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		store   Store
		padding int
	}{
		{Accounts(filepath.Join(dir, "a.txt")), AccountsPadding},
		{Games(filepath.Join(dir, "g.txt")), GamesPadding},
		{Collection(filepath.Join(dir, "c.txt")), CollectionPadding},
	}

	for _, tc := range cases {
		require.NoError(t, tc.store.Save([]string{"record"}))

		data, err := os.ReadFile(tc.store.Path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		require.Len(t, lines, 2)
		require.Equal(t, "END"+strings.Repeat(" ", tc.padding), lines[1])
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := Games(filepath.Join(t.TempDir(), "games.txt"))
	records := []string{"one", "two"}

	require.NoError(t, s.Save(records))
	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestIsSentinel(t *testing.T) {
	require.True(t, IsSentinel("END"))
	require.True(t, IsSentinel("END                    "))
	require.False(t, IsSentinel("ENDGAME"))
	require.False(t, IsSentinel(""))
}

func TestStripSentinel_OnlyTrailing(t *testing.T) {
	lines := []string{"a", "END   ", "b"}
	require.Equal(t, lines, StripSentinel(lines))
	require.Equal(t, []string{"a"}, StripSentinel([]string{"a", "END"}))
}

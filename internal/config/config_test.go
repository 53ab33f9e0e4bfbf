package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileRunsOnDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	require.Equal(t, "data/dailytransactions.txt", cfg.TransactionsFile)
	require.Equal(t, "data/currentaccounts.txt", cfg.AccountsFile)
	require.Equal(t, "data/availablegames.txt", cfg.GamesFile)
	require.Equal(t, "data/gamescollection.txt", cfg.CollectionFile)
	require.Equal(t, "archive", cfg.ArchiveDir)
	require.Equal(t, "reports", cfg.ReportDir)
	require.Equal(t, "ledger_{timestamp}_{uuid}.xlsx", cfg.ReportNameFormat)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
transactions_file: /srv/ledger/tx.txt
accounts_file: /srv/ledger/accounts.txt
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/srv/ledger/tx.txt", cfg.TransactionsFile)
	require.Equal(t, "/srv/ledger/accounts.txt", cfg.AccountsFile)
	require.Equal(t, "debug", cfg.LogLevel)
	// Unset keys still default.
	require.Equal(t, "data/availablegames.txt", cfg.GamesFile)
	require.Equal(t, "reports", cfg.ReportDir)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts_file: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

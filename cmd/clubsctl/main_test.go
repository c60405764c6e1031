package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVersioner struct {
	version uint
	dirty   bool
	ok      bool
}

func (f fakeVersioner) MigrationVersion() (uint, bool, bool, error) {
	return f.version, f.dirty, f.ok, nil
}

func TestPrintVersion(t *testing.T) {
	tests := []struct {
		name string
		v    fakeVersioner
		want string
	}{
		{"no migrations", fakeVersioner{}, "schema version: none\n"},
		{"clean", fakeVersioner{version: 1, ok: true}, "schema version: 1\n"},
		{"dirty", fakeVersioner{version: 2, dirty: true, ok: true}, "schema version: 2 (dirty)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&out)

			require.NoError(t, printVersion(cmd, tt.v))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestLoadDataset(t *testing.T) {
	ds, err := loadDataset("")
	require.NoError(t, err)
	assert.NotEmpty(t, ds.Clubs)

	path := filepath.Join(t.TempDir(), "clubs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
owners:
  - email: host@yale.edu
    name: Host
clubs:
  - name: Go Club
    owner: host@yale.edu
    join_type: open
`), 0o600))

	ds, err = loadDataset(path)
	require.NoError(t, err)
	require.Len(t, ds.Clubs, 1)
	assert.Equal(t, "Go Club", ds.Clubs[0].Name)

	_, err = loadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTokenRequiresExactlyOneSelector(t *testing.T) {
	tests := [][]string{
		{"token"},
		{"token", "--user-id", "1", "--email", "a@yale.edu"},
	}

	for _, args := range tests {
		cmd := rootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one of --user-id or --email")
	}
}

func TestMigrateDownRejectsZeroSteps(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"migrate", "down", "--steps", "0"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps must be at least 1")
}

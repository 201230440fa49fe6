package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCmd_HasSubcommands(t *testing.T) {
	commands := backupCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "export")
	assert.Contains(t, commandNames, "import")
}

func TestBackupExportCmd_RequiresFileArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"backup", "export"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestBackupExportCmd_FailsWithoutServices(t *testing.T) {
	SetServices(Services{})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"backup", "export", filepath.Join(t.TempDir(), "b.json")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	// Seed first so the export has content.
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"seed"})
	require.NoError(t, rootCmd.Execute())

	path := filepath.Join(t.TempDir(), "backup.json")
	rootCmd.SetArgs([]string{"backup", "export", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "favoriteLeagues")

	rootCmd.SetArgs([]string{"backup", "import", path})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "imported successfully")
}

func TestSeedCmd_IsIdempotent(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"seed"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "seeded with defaults")

	buf.Reset()
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "already seeded")
}

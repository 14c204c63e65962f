package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"tubenotes/infrastructure/configuration"
)

func TestLoadEnvFromFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "config.env")
	content := "# comment line\n" +
		"\n" +
		"PLAIN_KEY=plain\n" +
		"QUOTED_KEY=\"quoted value\"\n" +
		"SPACED_KEY =  spaced  \n" +
		"no-equals-line\n" +
		"PRESET_KEY=from-file\n"
	assert.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("PRESET_KEY", "from-env")
	for _, key := range []string{"PLAIN_KEY", "QUOTED_KEY", "SPACED_KEY"} {
		os.Unsetenv(key)
		t.Cleanup(func() { os.Unsetenv(key) })
	}

	configuration.LoadEnvFromFile(envFile, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "plain", os.Getenv("PLAIN_KEY"))
	assert.Equal(t, "quoted value", os.Getenv("QUOTED_KEY"))
	assert.Equal(t, "spaced", os.Getenv("SPACED_KEY"))
	// Pre-existing environment wins over the file.
	assert.Equal(t, "from-env", os.Getenv("PRESET_KEY"))
}

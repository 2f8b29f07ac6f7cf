package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/s3uri/internal/config"
)

// isolateEnv clears every variable the config loader reads and points
// config discovery at an empty directory.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, names := range config.EnvVars() {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	orig := versionInfo
	defer func() { versionInfo = orig }()

	tests := []struct {
		name      string
		version   string
		commit    string
		buildDate string
	}{
		{
			name:      "set all values",
			version:   "1.0.0",
			commit:    "abc123",
			buildDate: "2024-01-15",
		},
		{
			name:      "set dev version",
			version:   "dev",
			commit:    "HEAD",
			buildDate: "unknown",
		},
		{
			name:      "set empty values",
			version:   "",
			commit:    "",
			buildDate: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo(tt.version, tt.commit, tt.buildDate)

			assert.Equal(t, tt.version, versionInfo.Version)
			assert.Equal(t, tt.commit, versionInfo.Commit)
			assert.Equal(t, tt.buildDate, versionInfo.BuildDate)
			assert.Equal(t, tt.version, rootCmd.Version)
		})
	}
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"config", "region", "profile", "endpoint", "force-path-style", "imds-region", "debug", "log-level"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "persistent flag %s", name)
	}
	for _, name := range []string{"bucket", "prefix", "delimiter", "max-keys", "list-timeout", "include", "exclude"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "browse flag %s", name)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["doctor"])
	assert.True(t, names["config"])
}

func TestExecute_ConfigReflectsFlags(t *testing.T) {
	isolateEnv(t)
	t.Setenv("S3URI_BUCKET", "from-env")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--region", "eu-west-1"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, Execute())

	assert.Contains(t, out.String(), "region: eu-west-1")
	assert.Contains(t, out.String(), "bucket: from-env")
	assert.Contains(t, out.String(), "list_timeout: 30s")

	cfg := config.GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

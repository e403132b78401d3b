package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
candidates:
  - type: example.com/app.MockDB
    implements: ["example.com/app.Database", "io.Closer"]
  - type: example.com/app.MockCache
    implements: ["example.com/app.Cache"]
    lifetimes: [singleton]
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestRunPlan(t *testing.T) {
	t.Run("PrintsReport", func(t *testing.T) {
		out, _, err := execute(t, writeManifest(t, manifestYAML))
		require.NoError(t, err)
		assert.Equal(t, "The interface Closer is ignored\n"+
			"The interface Marshaler is ignored\n"+
			"The interface Equatable[_] is ignored\n"+
			"MockDB : Database (Transient)\n"+
			"MockCache : Cache (Singleton)\n", out)
	})

	t.Run("LifetimeFlag", func(t *testing.T) {
		out, _, err := execute(t, "--lifetime", "scoped", writeManifest(t, manifestYAML))
		require.NoError(t, err)
		assert.Contains(t, out, "MockDB : Database (Scoped)\n")
		assert.Contains(t, out, "MockCache : Cache (Singleton)\n")
	})

	t.Run("InfoLogsToStderr", func(t *testing.T) {
		out, logs, err := execute(t, "--log-level", "info", writeManifest(t, manifestYAML))
		require.NoError(t, err)
		assert.NotContains(t, out, "registration pass resolved")
		assert.Contains(t, logs, "registration pass resolved")
	})

	t.Run("BadLifetime", func(t *testing.T) {
		_, _, err := execute(t, "--lifetime", "pooled", writeManifest(t, manifestYAML))
		assert.ErrorContains(t, err, "unknown lifetime")
	})

	t.Run("ConflictPrintsPartialReport", func(t *testing.T) {
		out, _, err := execute(t, writeManifest(t, manifestYAML+`  - type: example.com/app.Twice
    implements: ["example.com/app.Cache"]
    lifetimes: [singleton, scoped]
`))
		assert.ErrorContains(t, err, "example.com/app.Twice")
		assert.Contains(t, out, "MockCache : Cache (Singleton)\n")
	})

	t.Run("MissingArgument", func(t *testing.T) {
		_, _, err := execute(t)
		assert.Error(t, err)
	})
}

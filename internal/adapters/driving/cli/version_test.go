package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	saved := version
	version = v
	t.Cleanup(func() { version = saved })
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	withVersion(t, "1.2.3")

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "feedsearch version 1.2.3\n", out)
}

func TestVersionCmd_VerboseAddsToolchain(t *testing.T) {
	withVersion(t, "dev")

	out, err := execute(t, "version", "--verbose")

	require.NoError(t, err)
	assert.Contains(t, out, "feedsearch version dev")
	assert.Contains(t, out, runtime.Version())
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "version", "extra")

	assert.Error(t, err)
}

func TestExecute_SetsVersion(t *testing.T) {
	withVersion(t, "dev")
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute(t.Context(), "9.9.9"))

	assert.Equal(t, "9.9.9", version)
}

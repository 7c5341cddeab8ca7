package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "release", version: "test-version-1.0.0", want: "sercha-launcher version test-version-1.0.0"},
		{name: "dev", version: "dev", want: "sercha-launcher version dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version = tt.version

			out, err := execute(t, "version")

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestVersionCmd_Build(t *testing.T) {
	defer func() { versionBuild = false }()

	out, err := execute(t, "version", "--build")

	require.NoError(t, err)
	assert.Contains(t, out, "go: "+runtime.Version())
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}

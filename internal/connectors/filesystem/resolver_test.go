package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"file:// URI is converted to local path", "file:///Users/test/documents/file.txt", "/Users/test/documents/file.txt"},
		{"file:// URI with spaces", "file:///Users/test/my documents/file.txt", "/Users/test/my documents/file.txt"},
		{"bare path passes through unchanged", "/Users/test/documents/file.txt", "/Users/test/documents/file.txt"},
		{"relative path passes through unchanged", "relative/path/to/file.txt", "relative/path/to/file.txt"},
		{"empty string passes through", "", ""},
		{"file:// prefix only", "file://", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}

func TestTargetForRoundTrip(t *testing.T) {
	assert.Equal(t, "/tmp/a b.txt", ResolvePath(TargetFor("/tmp/a b.txt")))
}

package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleURI_NonTerminal(t *testing.T) {
	for _, prefix := range []string{"", "/", "a/", "a/b/"} {
		for _, dir := range []bool{true, false} {
			assert.Empty(t, ConsoleURI("logs", prefix, "us-east-1", dir), "prefix %q dir %v", prefix, dir)
		}
	}
}

func TestConsoleURI_Terminal(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		dir    bool
		want   string
	}{
		{
			name:   "object",
			prefix: "2024/jan.log",
			want:   "https://s3.console.aws.amazon.com/s3/object/logs?prefix=2024/jan.log&region=ap-northeast-1",
		},
		{
			name:   "folder",
			prefix: "2024/empty",
			dir:    true,
			want:   "https://s3.console.aws.amazon.com/s3/buckets/logs?region=ap-northeast-1&prefix=2024/empty/&showversions=false",
		},
		{
			name:   "root level object",
			prefix: "readme",
			want:   "https://s3.console.aws.amazon.com/s3/object/logs?prefix=readme&region=ap-northeast-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConsoleURI("logs", tt.prefix, "ap-northeast-1", tt.dir))
		})
	}
}

func TestConsoleURI_DirectoryAndObjectDiffer(t *testing.T) {
	for _, prefix := range []string{"a", "a/b", "x.txt", "deep/er/key"} {
		dir := ConsoleURI("c", prefix, "eu-west-1", true)
		obj := ConsoleURI("c", prefix, "eu-west-1", false)
		assert.NotEmpty(t, dir)
		assert.NotEmpty(t, obj)
		assert.NotEqual(t, dir, obj)
	}
}

func TestConsoleURIWithDelimiter(t *testing.T) {
	assert.Empty(t, ConsoleURIWithDelimiter("c", "a|", "r", false, "|"))
	assert.Equal(t,
		"https://s3.console.aws.amazon.com/s3/buckets/c?region=r&prefix=a|&showversions=false",
		ConsoleURIWithDelimiter("c", "a", "r", true, "|"))
}

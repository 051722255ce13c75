package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"dev", "poet dev (commit abc1234def, built today)"},
		{"v1.2.3", "poet v1.2.3 (commit abc1234def, built today)"},
		{"1.2.3", "poet 1.2.3 (commit abc1234def, built today)"},
		{"1.2", "poet dev (commit abc1234def, built today)"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			i := Info{Version: tt.version, CommitHash: "abc1234def", BuildTime: "today"}
			assert.Equal(t, tt.want, i.String())
		})
	}
}

func TestInfo_Short(t *testing.T) {
	assert.Equal(t, "abc1234", Info{CommitHash: "abc1234def"}.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestGet(t *testing.T) {
	i := Get(">= 1.0, < 2.0")
	assert.Equal(t, ">= 1.0, < 2.0", i.Documents)
	assert.NotEmpty(t, i.GoVersion)
	assert.Contains(t, i.Platform, "/")
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"WARN", WARN},
		{"Error", ERROR},
	}

	for _, tc := range cases {
		level, ok := ParseLevel(tc.name)
		assert.True(t, ok, "level %q", tc.name)
		assert.Equal(t, tc.want, level, "level %q", tc.name)
	}
}

func TestParseLevelRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "verbose", "trace", "42"} {
		level, ok := ParseLevel(name)
		assert.False(t, ok, "name %q", name)
		assert.Equal(t, INFO, level, "unrecognized names fall back to INFO")
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "FATAL", FATAL.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "", "abc123")

	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, BuildInfoUnknown, info.Date)
	assert.True(t, info.HasVersion())
	assert.Equal(t, "Build version: 1.2.0\nBuild date: N/A\nBuild commit: abc123\n", info.String())

	assert.False(t, NewAppBuildInfo("", "", "").HasVersion())
}

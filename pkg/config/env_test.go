package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"startpage/pkg/config"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")
	assert.Equal(t, "hello", config.GetEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", config.GetEnvString("TEST_STRING_MISSING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, config.GetEnvInt("TEST_INT", 7))

	t.Setenv("TEST_INT_BAD", "not-a-number")
	assert.Equal(t, 7, config.GetEnvInt("TEST_INT_BAD", 7))

	assert.Equal(t, 7, config.GetEnvInt("TEST_INT_MISSING", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, config.GetEnvBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL_BAD", "yes-please")
	assert.True(t, config.GetEnvBool("TEST_BOOL_BAD", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, config.GetEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION_BAD", "5 parsecs")
	assert.Equal(t, time.Second, config.GetEnvDuration("TEST_DURATION_BAD", time.Second))
}

// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	key := "TEST_KEY"
	fallback := "default_value"

	// Test when the environment variable is not set
	value := getEnv(key, fallback)
	assert.Equal(t, fallback, value)

	// Test when the environment variable is set
	expectedValue := "expected_value"
	os.Setenv(key, expectedValue)
	value = getEnv(key, fallback)
	assert.Equal(t, expectedValue, value)

	// Clean up
	os.Unsetenv(key)
}

func TestGetEnvTyped(t *testing.T) {
	assert.Equal(t, 42, getEnvInt("TEST_INT_UNSET", 42))
	os.Setenv("TEST_INT", "7")
	assert.Equal(t, 7, getEnvInt("TEST_INT", 42))
	os.Unsetenv("TEST_INT")

	assert.Equal(t, int64(3), getEnvInt64("TEST_INT64_UNSET", 3))
	os.Setenv("TEST_INT64", "9000000000")
	assert.Equal(t, int64(9000000000), getEnvInt64("TEST_INT64", 3))
	os.Unsetenv("TEST_INT64")

	assert.True(t, getEnvBool("TEST_BOOL_UNSET", true))
	os.Setenv("TEST_BOOL", "false")
	assert.False(t, getEnvBool("TEST_BOOL", true))
	os.Unsetenv("TEST_BOOL")
}

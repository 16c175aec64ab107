package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertErrorIs checks that err matches target in its chain and, when
// expected is non-empty, that the message mentions it.
func AssertErrorIs(t *testing.T, err, target error, expected string) bool {
	t.Helper()
	if !assert.ErrorIs(t, err, target) {
		return false
	}
	if expected != "" {
		return assert.Contains(t, err.Error(), expected)
	}
	return true
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("ada_l"))
	assert.True(t, ValidUsername("  grace.h  "))
	assert.False(t, ValidUsername("ab"))
	assert.False(t, ValidUsername("has space"))
	assert.False(t, ValidUsername(strings.Repeat("x", 51)))
	assert.False(t, ValidUsername(""))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("secret"))
	assert.False(t, ValidPassword("five5"))
}

func TestValidSubject(t *testing.T) {
	assert.True(t, ValidSubject("Biology"))
	assert.False(t, ValidSubject("   "))
	assert.False(t, ValidSubject(strings.Repeat("s", 101)))
}

func TestStringValidation_Optional(t *testing.T) {
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(3).Validate())
	assert.False(t, NewStringValidation("ab").WithRequired(false).WithMinLength(3).Validate())
}

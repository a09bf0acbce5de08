package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	mask := PermReadArticles | PermWriteArticles

	assert.True(t, Can(mask, PermReadArticles))
	assert.True(t, Can(mask, PermWriteArticles))
	assert.True(t, Can(mask, PermReadArticles|PermWriteArticles))
	assert.False(t, Can(mask, PermCreateUsers))
	assert.False(t, Can(mask, PermAdminister))
	assert.False(t, Can(mask, PermReadArticles|PermCreateUsers))
}

func TestCanMonotonic(t *testing.T) {
	// If a mask grants a combined requirement it grants every subset of it.
	mask := PermReadArticles | PermWriteArticles | PermCreateUsers
	combined := PermReadArticles | PermCreateUsers

	assert.True(t, Can(mask, combined))
	assert.True(t, Can(mask, PermReadArticles))
	assert.True(t, Can(mask, PermCreateUsers))
}

func TestCanAdministratorMask(t *testing.T) {
	mask := Permission(0xFF)

	for _, p := range []Permission{PermReadArticles, PermWriteArticles, PermCreateUsers, PermResetPassword, PermAdminister} {
		assert.True(t, Can(mask, p))
	}
}

func TestCanEmptyMask(t *testing.T) {
	assert.False(t, Can(0, PermReadArticles))
	assert.True(t, Can(0, 0))
}

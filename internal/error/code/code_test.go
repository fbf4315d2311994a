package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	for c := range codeMessageMap {
		_, ok := codeStatusMap[c]
		assert.True(t, ok, "code %d has no status", c)
	}
	for c := range codeStatusMap {
		_, ok := codeMessageMap[c]
		assert.True(t, ok, "code %d has no message", c)
	}
}

func TestAuthCodesStatus(t *testing.T) {
	assert.Equal(t, StatusUnauthorized, GetStatus(ErrTokenMissing))
	assert.Equal(t, StatusForbidden, GetStatus(ErrTokenInvalid))
	assert.Equal(t, StatusUnauthorized, GetStatus(ErrInvalidCredentials))
	assert.Equal(t, StatusBadRequest, GetStatus(ErrUserAlreadyExist))
	assert.Equal(t, StatusInternalServerError, GetStatus(999999))
	assert.Equal(t, "未知错误", GetMessage(999999))
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := ErrUserNotFound.In("getUser")

	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.False(t, errors.Is(err, ErrPermissionDenied))
	assert.Equal(t, "getUser", err.Method)
	assert.Empty(t, ErrUserNotFound.Method)
}

func TestError_Aliases(t *testing.T) {
	assert.True(t, errors.Is(ErrBelongsToOtherBusiness, ErrCrossBusinessForbidden))
	assert.Equal(t, 16016, ErrBelongsToOtherBusiness.Code)
	assert.Equal(t, 16015, ErrCannotUpdateOwnInfo.Code)
}

func TestAsError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, AsError(nil))
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		err := fmt.Errorf("validate: %w", ErrEmailAlreadyUsed)
		assert.Equal(t, 16014, AsError(err).Code)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := AsError(cause)
		assert.Equal(t, 16001, err.Code)
		assert.ErrorIs(t, err, cause)
	})
}

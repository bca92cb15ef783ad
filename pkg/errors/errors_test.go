package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{ErrCodeOrderNotFound, http.StatusNotFound},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInvalidToken, http.StatusUnauthorized},
		{ErrCodeInsufficientStock, http.StatusBadRequest},
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, New(c.code, "x").HTTPStatus(), "code=%d", c.code)
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.NotContains(t, appErr.Message, "boom")
	})

	t.Run("被fmt包装的AppError仍可提取", func(t *testing.T) {
		wrapped := fmt.Errorf("ctx: %w", ErrInvalidParams)
		appErr := GetAppError(wrapped)
		assert.Equal(t, ErrCodeInvalidParams, appErr.Code)
		assert.True(t, errors.Is(wrapped, ErrInvalidParams))
	})
}

func TestIsCode(t *testing.T) {
	err := WithCode(errors.New("dup"), ErrCodeDuplicateEntry, "重复记录")
	assert.True(t, IsCode(err, ErrCodeDuplicateEntry))
	assert.False(t, IsCode(err, ErrCodeInternal))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeInternal))
}

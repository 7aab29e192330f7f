package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatusClassification(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{400, ErrValidation},
		{401, ErrAuthentication},
		{403, ErrPermissionDenied},
		{404, ErrNotFound},
		{409, ErrConflict},
		{422, ErrValidation},
		{429, ErrRateLimited},
		{500, ErrServer},
		{503, ErrServer},
	}
	for _, tc := range cases {
		err := FromStatus(tc.status, "boom")
		assert.ErrorIsf(t, err, tc.sentinel, "status %d", tc.status)
		assert.Equal(t, "boom", err.Error())
		assert.Equal(t, tc.status, err.Status)
	}
}

func TestFromStatusDefaultMessage(t *testing.T) {
	err := FromStatus(502, "")
	assert.Equal(t, "HTTP 502", err.Error())
	assert.ErrorIs(t, err, ErrServer)
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError(cause)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFieldErrors(t *testing.T) {
	apiErr := FromStatus(422, "validation failed")
	apiErr.Fields = map[string]string{"email": "a valid email is required"}

	fields := FieldErrors(apiErr)
	assert.Equal(t, "a valid email is required", fields["email"])

	assert.Nil(t, FieldErrors(errors.New("plain")))
	assert.Nil(t, FieldErrors(nil))
}

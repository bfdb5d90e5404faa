package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUpstreamFailed, http.StatusBadGateway},
		{ErrCodeConfiguration, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("topic missing")
	err := Configuration(cause, "lookup failed")

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsCode(err, ErrCodeConfiguration))
	assert.Equal(t, ErrCodeConfiguration, GetCode(err))
	assert.Contains(t, err.Error(), "topic missing")
}

func TestUpstream(t *testing.T) {
	err := Upstream(stderrors.New("connection refused"), "vehicle lookup failed")

	assert.Equal(t, http.StatusBadGateway, err.HTTPStatusCode())
	assert.Equal(t, "[UPSTREAM_FAILED] vehicle lookup failed: connection refused", err.Error())
}

func TestGetCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, ErrCodeInternal, GetCode(stderrors.New("plain")))
	assert.Nil(t, GetDetails(stderrors.New("plain")))
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
}

func TestWithDetails(t *testing.T) {
	err := InvalidInput("payload", "missing fields").WithDetails(map[string]interface{}{"email": "required"})

	assert.Equal(t, http.StatusBadRequest, err.HTTPStatusCode())
	assert.Equal(t, "required", GetDetails(err)["email"])
	assert.Equal(t, "[INVALID_INPUT] invalid payload: missing fields", err.Error())
}

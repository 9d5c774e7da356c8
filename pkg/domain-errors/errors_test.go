package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "store unreachable")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cause), "wrapped error should match its cause")
	assert.True(t, HasCode(err, CodeInternal))
	assert.Equal(t, "store unreachable: connection refused", err.Error())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(CodeConflict, "allocation retries exhausted")
	outer := fmt.Errorf("allocate: %w", inner)

	assert.True(t, HasCode(outer, CodeConflict))
	assert.False(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeConflict))
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "tipoActividadId is required")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:         http.StatusBadRequest,
		CodeValidation:         http.StatusBadRequest,
		CodeInvalidConfig:      http.StatusBadRequest,
		CodeNotFound:           http.StatusNotFound,
		CodeConflict:           http.StatusConflict,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeForbidden:          http.StatusForbidden,
		CodeTimeout:            http.StatusGatewayTimeout,
		CodeInternal:           http.StatusInternalServerError,
		CodeInvariantViolation: http.StatusInternalServerError,
		Code("mystery"):        http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}

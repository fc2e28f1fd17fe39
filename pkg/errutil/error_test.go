package errutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[CoreStatus]int{
		StatusBadRequest:       http.StatusBadRequest,
		StatusValidationFailed: http.StatusBadRequest,
		StatusNotFound:         http.StatusNotFound,
		StatusConflict:         http.StatusConflict,
		StatusTimeout:          http.StatusGatewayTimeout,
		StatusClientClosed:     499,
		StatusInternal:         http.StatusInternalServerError,
		StatusUnknown:          http.StatusInternalServerError,
	}
	for code, want := range cases {
		require.Equal(t, want, code.HTTPStatus(), "code %s", code)
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("Task not found"))

	var base BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, StatusNotFound, base.Code)
	require.Equal(t, "Task not found", base.Message)
}

func TestWithErrKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("write failed", WithErr(cause))

	require.ErrorIs(t, err, cause)
}

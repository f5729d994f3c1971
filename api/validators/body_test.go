package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
)

type tokenBody struct {
	Token string `json:"token" validate:"required,max=10"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"tok","extra":true}`))
	var body tokenBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBodyReportsFieldByJSONName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":""}`))
	var body tokenBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "is required", details["token"])
}

func TestDecodeJSONSkipsValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":""}`))
	var body tokenBody
	require.NoError(t, DecodeJSON(req, &body))
	require.Empty(t, body.Token)
}

func TestSanitizeString(t *testing.T) {
	require.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	require.Equal(t, "abc", SanitizeString("abc", 0))
}

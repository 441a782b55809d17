package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho() (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	_, c, rec := setupEcho()

	err := Health(c, 3, 8)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","cachedResults":3,"sweepTuples":8}`, rec.Body.String())
}

func TestUnavailable(t *testing.T) {
	_, c, rec := setupEcho()

	require.NoError(t, Unavailable(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, HealthUnavailable, result.Status)
}

func TestOK(t *testing.T) {
	_, c, rec := setupEcho()

	err := OK(c, map[string]int{"total": 3})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"total":3}}`, rec.Body.String())
}

func TestRawJSON(t *testing.T) {
	_, c, rec := setupEcho()
	body := []byte("{\n    \"name\": \"關西\"\n}")

	err := RawJSON(c, body)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(body), rec.Body.String(), "body must be passed through byte for byte")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		write       func(c echo.Context) error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "bad request",
			write:       func(c echo.Context) error { return BadRequest(c, "Invalid input") },
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeInvalidRequest,
			wantMessage: "Invalid input",
		},
		{
			name:        "invalid key",
			write:       InvalidKey,
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeInvalidRequest,
			wantMessage: MsgInvalidKey,
		},
		{
			name:        "not cached",
			write:       NotCached,
			wantStatus:  http.StatusNotFound,
			wantCode:    CodeNotFound,
			wantMessage: MsgNotCached,
		},
		{
			name:        "internal error",
			write:       InternalServerError,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    CodeInternalError,
			wantMessage: MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := setupEcho()

			require.NoError(t, tt.write(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	_, c, rec := setupEcho()

	err := ValidationError(c, map[string]string{"origin": "must be a 3-letter IATA code"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidationError, resp.Error.Code)
	assert.Equal(t, MsgValidationFailed, resp.Error.Message)
	assert.Equal(t, "must be a 3-letter IATA code", resp.Error.Details["origin"])
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-demo/internal/testutils"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils/response"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())

	return env
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()

	env := decodeEnvelope(t, rr)
	require.True(t, env.Success, rr.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func sessionRequest(method, target string, body io.Reader, id string) *http.Request {
	var params map[string]string
	if id != "" {
		params = map[string]string{"id": id}
	}

	req := testutils.CreateTestRequestWithSession(method, target, body, params)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

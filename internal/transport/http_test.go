package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type codedError struct{ code string }

func (e *codedError) Error() string             { return e.code }
func (e *codedError) CodeValue() string         { return e.code }
func (e *codedError) MessageValue() string      { return "message for " + e.code }
func (e *codedError) DetailsValue() any         { return nil }
func (e *codedError) RecoveryHintValue() string { return "hint" }

type testHandler struct {
	method string
	params json.RawMessage
	err    error
}

func (h *testHandler) Handle(_ context.Context, method string, params json.RawMessage) (any, error) {
	h.method = method
	h.params = params
	if h.err != nil {
		return nil, h.err
	}
	return map[string]string{"method": method}, nil
}

func postRPC(t *testing.T, url, body string) Response {
	t.Helper()
	resp, err := http.Post(url+"/rpc", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{}))
	t.Cleanup(server.Close)

	out := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"get_task","params":{"task_id":"T-01"},"id":1}`)
	require.Nil(t, out.Error)
	require.Equal(t, "get_task", handler.method)
	require.JSONEq(t, `{"task_id":"T-01"}`, string(handler.params))
}

func TestHTTPServer_RPCErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		body string
		code int
	}{
		{"parse", nil, `{"jsonrpc":`, ErrParseCode},
		{"invalid", nil, `{"jsonrpc":"1.0","method":"x","id":1}`, ErrInvalidReq},
		{"unknown method", &codedError{"UNKNOWN_METHOD"}, `{"jsonrpc":"2.0","method":"x","id":1}`, ErrMethodNotFound},
		{"invalid input", &codedError{"INVALID_INPUT"}, `{"jsonrpc":"2.0","method":"x","id":1}`, ErrInvalidParams},
		{"domain", &codedError{"TASK_NOT_FOUND"}, `{"jsonrpc":"2.0","method":"x","id":1}`, ErrApplication},
		{"internal", errors.New("boom"), `{"jsonrpc":"2.0","method":"x","id":1}`, ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(NewServer(&testHandler{err: tc.err}, Options{}))
			t.Cleanup(server.Close)

			out := postRPC(t, server.URL, tc.body)
			require.NotNil(t, out.Error)
			require.Equal(t, tc.code, out.Error.Code)
		})
	}
}

func TestHTTPServer_Board(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/board")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "get_board", handler.method)
}

func TestHTTPServer_MountsMCP(t *testing.T) {
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("mcp"))
	})
	server := httptest.NewServer(NewServer(&testHandler{}, Options{MCP: mcpHandler}))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/mcp", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "mcp", string(body))
}

func TestHTTPServer_Health(t *testing.T) {
	server := httptest.NewServer(NewServer(&testHandler{}, Options{}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

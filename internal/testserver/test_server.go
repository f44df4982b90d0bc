// Package testserver runs the full board stack behind an httptest server.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/designboard/internal/app"
	"github.com/rpggio/designboard/internal/config"
	"github.com/rpggio/designboard/internal/domain/proposal"
	"github.com/rpggio/designboard/internal/transport"
)

// TestServer exposes the HTTP endpoints of a freshly seeded board.
type TestServer struct {
	Server    *httptest.Server
	App       *app.App
	Approvals *Approvals
}

// Approvals holds scheduled approvals until the test releases them.
type Approvals struct {
	mu    sync.Mutex
	queue []func()
}

type heldTimer struct{}

func (heldTimer) Stop() bool { return false }

// AfterFunc implements proposal.Scheduler.
func (a *Approvals) AfterFunc(_ time.Duration, f func()) proposal.Timer {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queue = append(a.queue, f)
	return heldTimer{}
}

// Release runs every held approval and reports how many ran.
func (a *Approvals) Release() int {
	a.mu.Lock()
	due := a.queue
	a.queue = nil
	a.mu.Unlock()

	for _, f := range due {
		f()
	}
	return len(due)
}

// New starts a server over the default seed board.
func New(t *testing.T, opts ...app.Option) *TestServer {
	t.Helper()

	approvals := &Approvals{}
	opts = append([]app.Option{app.WithProposalOptions(proposal.WithScheduler(approvals))}, opts...)

	a, err := app.New(context.Background(), config.Default(), nil, opts...)
	require.NoError(t, err)

	mcpServer := a.MCPServer("test", nil)
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)
	server := httptest.NewServer(transport.NewServer(a.Handler, transport.Options{MCP: mcpHandler}))

	t.Cleanup(func() {
		server.Close()
		a.Close()
	})

	return &TestServer{Server: server, App: a, Approvals: approvals}
}

// RPCResponse is a decoded JSON-RPC response.
type RPCResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type RPCError struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    transport.ErrorData `json:"data"`
}

// Call posts one JSON-RPC request to /rpc.
func (ts *TestServer) Call(t *testing.T, method string, params any) RPCResponse {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(ts.Server.URL+"/rpc", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status 200, got %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var out RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// MustCall is Call that fails the test on an RPC error and decodes the result into out.
func (ts *TestServer) MustCall(t *testing.T, method string, params, out any) {
	t.Helper()
	resp := ts.Call(t, method, params)
	require.Nil(t, resp.Error, "rpc error: %+v", resp.Error)
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Result, out))
	}
}

package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegofornalha/flow-mcp/internal/errors"
)

// fakeNode is an httptest-backed JSON-RPC endpoint that records requests
type fakeNode struct {
	server   *httptest.Server
	requests []Request
	respond  func(w http.ResponseWriter)
}

func newFakeNode(t *testing.T) *fakeNode {
	node := &fakeNode{}
	node.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req Request
		require.NoError(t, json.Unmarshal(body, &req))
		node.requests = append(node.requests, req)

		node.respond(w)
	}))
	t.Cleanup(node.server.Close)
	return node
}

func (n *fakeNode) respondWith(body string) {
	n.respond = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

func TestCallSuccess(t *testing.T) {
	node := newFakeNode(t)
	node.respondWith(`{"jsonrpc":"2.0","id":1,"result":"0x2eb"}`)

	client := New(node.server.URL)
	result, err := client.Call(context.Background(), "eth_chainId")
	require.NoError(t, err)
	assert.Equal(t, `"0x2eb"`, string(result))

	require.Len(t, node.requests, 1)
	sent := node.requests[0]
	assert.Equal(t, "2.0", sent.JSONRPC)
	assert.Equal(t, 1, sent.ID)
	assert.Equal(t, "eth_chainId", sent.Method)
	assert.Empty(t, sent.Params)
}

func TestCallSendsOrderedParams(t *testing.T) {
	node := newFakeNode(t)
	node.respondWith(`{"jsonrpc":"2.0","id":1,"result":"0x0"}`)

	client := New(node.server.URL)
	_, err := client.Call(context.Background(), "eth_getBalance",
		"0x1234567890abcdef1234567890abcdef12345678", "latest")
	require.NoError(t, err)

	require.Len(t, node.requests, 1)
	require.Len(t, node.requests[0].Params, 2)
	assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", node.requests[0].Params[0])
	assert.Equal(t, "latest", node.requests[0].Params[1])
}

func TestCallClassifiesRPCError(t *testing.T) {
	node := newFakeNode(t)
	node.respondWith(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"execution reverted"}}`)

	client := New(node.server.URL)
	_, err := client.Call(context.Background(), "eth_call")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindRPC))
	assert.Contains(t, err.Error(), "execution reverted")

	mcpErr := err.(*errors.MCPError)
	assert.Equal(t, -32000, mcpErr.Code)
}

func TestCallClassifiesMalformedResponse(t *testing.T) {
	node := newFakeNode(t)
	node.respondWith(`{"jsonrpc":"2.0","id":1}`)

	client := New(node.server.URL)
	_, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMalformedResponse))
	assert.Contains(t, err.Error(), "neither result nor error")
}

func TestCallClassifiesInvalidJSON(t *testing.T) {
	node := newFakeNode(t)
	node.respondWith(`not json at all`)

	client := New(node.server.URL)
	_, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMalformedResponse))
}

func TestCallClassifiesHTTPErrorStatus(t *testing.T) {
	node := newFakeNode(t)
	node.respond = func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadGateway)
	}

	client := New(node.server.URL)
	_, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindTransport))
	assert.Contains(t, err.Error(), "502")
}

func TestCallClassifiesConnectionFailure(t *testing.T) {
	node := newFakeNode(t)
	endpoint := node.server.URL
	node.server.Close()

	client := New(endpoint)
	_, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindTransport))
}

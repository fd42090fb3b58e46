package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/diegofornalha/flow-mcp/internal/errors"
	"github.com/diegofornalha/flow-mcp/internal/logging"
)

// Request represents a JSON-RPC 2.0 request
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// Response represents a JSON-RPC 2.0 response
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Caller performs a single JSON-RPC round trip against the node. Tools
// depend on this interface so tests can substitute the transport.
type Caller interface {
	Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
}

// Client is a JSON-RPC client for a Flow EVM node. It performs exactly one
// HTTP POST per call with no retries and no response caching.
type Client struct {
	http     *resty.Client
	endpoint string
	logger   *logging.Logger
}

// New creates a new RPC client for the given endpoint
func New(endpoint string) *Client {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:     client,
		endpoint: endpoint,
		logger:   logging.RPCLogger,
	}
}

// Endpoint returns the configured endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call sends a single JSON-RPC request and classifies the outcome.
// The id is fixed; no multiplexing happens over one connection.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	if params == nil {
		params = []interface{}{}
	}

	request := Request{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	c.logger.Debug("sending request", logging.String("method", method))

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		Post(c.endpoint)
	if err != nil {
		return nil, errors.TransportWrap(err, method, "request failed")
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.TransportError(method, fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode()))
	}

	var response Response
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return nil, errors.MalformedError(method, fmt.Sprintf("response is not valid JSON: %v", err))
	}

	if response.Error != nil {
		c.logger.Debug("node returned error",
			logging.String("method", method),
			logging.Int("code", response.Error.Code))
		return nil, errors.RPCError(method, response.Error.Code, response.Error.Message)
	}

	if len(response.Result) == 0 {
		return nil, errors.MalformedError(method, "response contains neither result nor error")
	}

	return response.Result, nil
}

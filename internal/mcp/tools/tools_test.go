package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegofornalha/flow-mcp/internal/config"
	"github.com/diegofornalha/flow-mcp/internal/errors"
)

// fakeCaller counts round trips so tests can assert a tool stayed local
type fakeCaller struct {
	calls      int
	lastMethod string
	lastParams []interface{}
	result     json.RawMessage
	err        error
}

func (f *fakeCaller) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	f.calls++
	f.lastMethod = method
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testContext(caller *fakeCaller) *ToolContext {
	return &ToolContext{
		Network: &config.NetworkConfig{
			Name:        "Flow EVM Testnet",
			RPCURL:      "https://testnet.evm.nodes.onflow.org",
			ChainID:     545,
			ExplorerURL: "https://evm-testnet.flowscan.io",
			Symbol:      "FLOW",
			Decimals:    18,
		},
		Caller: caller,
	}
}

func callReq(argsJSON string) *mcp.CallToolRequest {
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Arguments: json.RawMessage(argsJSON),
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is not text")
	return text.Text
}

const (
	testAddress = "0x1234567890abcdef1234567890abcdef12345678"
	oneFlowHex  = "0xde0b6b3a7640000" // 10^18
)

func TestGetBalanceFormatsWholeUnits(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"` + oneFlowHex + `"`)}
	def := NewGetBalanceTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"address":"`+testAddress+`"}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "1.000000 FLOW")
	assert.Contains(t, text, "1000000000000000000")

	// blockParameter defaulted before hitting the wire
	require.Len(t, caller.lastParams, 2)
	assert.Equal(t, testAddress, caller.lastParams[0])
	assert.Equal(t, "latest", caller.lastParams[1])
	assert.Equal(t, "eth_getBalance", caller.lastMethod)
}

func TestGetBalanceZero(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x0"`)}
	def := NewGetBalanceTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"address":"`+testAddress+`"}`))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "0.000000 FLOW")
}

func TestGetBalanceRejectsBadAddressBeforeAnyCall(t *testing.T) {
	caller := &fakeCaller{}
	def := NewGetBalanceTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"address":"0xnothex"}`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Validation Error")
	assert.Equal(t, 0, caller.calls, "validation failure must not reach the transport")
}

func TestRPCErrorSurfacesInResult(t *testing.T) {
	caller := &fakeCaller{err: errors.RPCError("eth_getBalance", -32000, "header not found")}
	def := NewGetBalanceTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"address":"`+testAddress+`"}`))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "RPC Error")
	assert.Contains(t, text, "header not found")
}

func TestTransportFailureSurfacesInResult(t *testing.T) {
	caller := &fakeCaller{err: errors.TransportError("eth_gasPrice", "connection refused")}
	def := NewGasPriceTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{}`))
	require.NoError(t, err, "transport failures must not raise past the tool boundary")
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "connection refused")
}

func TestGetCodeDistinguishesEmptyCode(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x"`)}
	def := NewGetCodeTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"address":"`+testAddress+`"}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "No code found")
}

func TestGetCodeReportsBytecode(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x6080604052"`)}
	def := NewGetCodeTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"address":"`+testAddress+`"}`))
	require.NoError(t, err)

	text := resultText(t, res)
	assert.Contains(t, text, "0x6080604052")
	assert.Contains(t, text, "5 bytes")
}

func TestChainIDFormatsDecimalAndHex(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x2eb"`)}
	def := NewChainIDTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{}`))
	require.NoError(t, err)

	text := resultText(t, res)
	assert.Contains(t, text, "747")
	assert.Contains(t, text, "0x2eb")
}

func TestGasPriceFormatsGwei(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x3b9aca00"`)} // 1 Gwei
	def := NewGasPriceTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{}`))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "1.00 Gwei")
}

func TestBlockNumber(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x3039"`)}
	def := NewBlockNumberTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{}`))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "12345")
}

func TestCallPassesTransactionObject(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x0000000000000000000000000000000000000000000000000000000000000001"`)}
	def := NewCallTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{
		"transaction": {"to": "`+testAddress+`", "data": "0x70a08231"},
		"blockParameter": "latest"
	}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	require.Len(t, caller.lastParams, 2)
	tx := caller.lastParams[0].(map[string]interface{})
	assert.Equal(t, testAddress, tx["to"])
	assert.Equal(t, "0x70a08231", tx["data"])
	assert.Equal(t, "latest", caller.lastParams[1])
}

func TestCallRequiresToAddress(t *testing.T) {
	caller := &fakeCaller{}
	def := NewCallTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"transaction": {"data": "0x70a08231"}}`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, 0, caller.calls)
}

func TestCallReportsEmptyReturnData(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"0x"`)}
	def := NewCallTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"transaction": {"to": "`+testAddress+`"}}`))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "no data")
}

func TestGetLogsEmptyResult(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`[]`)}
	def := NewGetLogsTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"filter": {"fromBlock": "0x1", "toBlock": "latest"}}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "No logs found matching the filter criteria.", resultText(t, res))
}

func TestGetLogsRendersEntries(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`[
		{
			"address": "` + testAddress + `",
			"topics": ["0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"],
			"data": "0x00",
			"blockNumber": "0x10",
			"transactionHash": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"logIndex": "0x0",
			"removed": false
		}
	]`)}
	def := NewGetLogsTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"filter": {"address": "`+testAddress+`"}}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "Found 1 log(s)")
	assert.Contains(t, text, "Address: "+testAddress)
	assert.Contains(t, text, "Block: 16 (0x10)")
	assert.Contains(t, text, "0xddf252ad")
}

func TestGetLogsValidatesFilterFields(t *testing.T) {
	caller := &fakeCaller{}
	def := NewGetLogsTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"filter": {"address": "not-an-address"}}`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, 0, caller.calls)
}

func TestSendRawTransactionIncludesExplorerLink(t *testing.T) {
	hash := "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	caller := &fakeCaller{result: json.RawMessage(`"` + hash + `"`)}
	def := NewSendRawTransactionTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"signedTransaction": "0xf86b0185"}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, hash)
	assert.Contains(t, text, "https://evm-testnet.flowscan.io/tx/"+hash)
}

func TestSendRawTransactionRejectsEmptyPayload(t *testing.T) {
	caller := &fakeCaller{}
	def := NewSendRawTransactionTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{"signedTransaction": "0x"}`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, 0, caller.calls)
}

func TestCheckCOAClassification(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"0x0000000000000000000000020000000000000000", "COA factory address"},
		{"0x000000000000000000000002FFFFFFFFFFFFFFFF", "Cadence-Owned Account (COA)"},
		{"0x0000000000000000000000010000000000000001", "reserved Flow system address"},
		{testAddress, "not a Cadence-Owned Account"},
	}

	for _, tc := range cases {
		caller := &fakeCaller{}
		def := NewCheckCOATool(testContext(caller))

		res, err := def.Handler(context.Background(), callReq(`{"address":"`+tc.address+`"}`))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, resultText(t, res), tc.want, "address %s", tc.address)
		assert.Equal(t, 0, caller.calls, "classification must stay local for %s", tc.address)
	}
}

func TestNetworkInfoIsLocal(t *testing.T) {
	caller := &fakeCaller{}
	def := NewNetworkInfoTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "Flow EVM Testnet")
	assert.Contains(t, text, "545")
	assert.Contains(t, text, "https://testnet.evm.nodes.onflow.org")
	assert.Equal(t, 0, caller.calls)
}

func TestMalformedResultSurfacesAsError(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`{"unexpected":"shape"}`)}
	def := NewChainIDTool(testContext(caller))

	res, err := def.Handler(context.Background(), callReq(`{}`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Malformed Response")
}

// Package evm interprets raw Flow EVM JSON-RPC values: hex quantities,
// atto-FLOW amounts, and the reserved address space.
package evm

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/diegofornalha/flow-mcp/internal/errors"
)

// Reserved Flow EVM address prefixes. Addresses in the 0x..01 space are
// Flow system contracts and precompiles; addresses in the 0x..02 space are
// Cadence-Owned Accounts. The COA factory is the zero-suffix address of
// the COA space.
const (
	ReservedSystemPrefix = "0x000000000000000000000001"
	COAPrefix            = "0x000000000000000000000002"
	COAFactoryAddress    = "0x0000000000000000000000020000000000000000"
)

var (
	attoPerFlow   = uint256.NewInt(1_000_000_000_000_000_000) // 10^18
	attoPerGwei   = uint256.NewInt(1_000_000_000)             // 10^9
	flowFracScale = uint256.NewInt(1_000_000_000_000)         // 10^12, keeps 6 places
	gweiFracScale = uint256.NewInt(10_000_000)                // 10^7, keeps 2 places
)

// ParseQuantity parses a 0x-prefixed hex quantity as an unsigned integer
func ParseQuantity(hex string) (*uint256.Int, error) {
	if !strings.HasPrefix(hex, "0x") && !strings.HasPrefix(hex, "0X") {
		return nil, errors.MalformedError("parse quantity", fmt.Sprintf("quantity %q lacks 0x prefix", hex))
	}
	value, err := uint256.FromHex(hex)
	if err != nil {
		return nil, errors.MalformedError("parse quantity", fmt.Sprintf("invalid hex quantity %q: %v", hex, err))
	}
	return value, nil
}

// FormatAttoFlow renders an atto-FLOW amount as whole FLOW with six fixed
// decimal places, e.g. 10^18 -> "1.000000".
func FormatAttoFlow(value *uint256.Int) string {
	whole := new(uint256.Int)
	rem := new(uint256.Int)
	whole.DivMod(value, attoPerFlow, rem)
	frac := new(uint256.Int).Div(rem, flowFracScale).Uint64()
	return fmt.Sprintf("%s.%06d", whole.Dec(), frac)
}

// FormatGwei renders an atto-FLOW amount in Gwei with two fixed decimal
// places, e.g. 1500000000 -> "1.50".
func FormatGwei(value *uint256.Int) string {
	whole := new(uint256.Int)
	rem := new(uint256.Int)
	whole.DivMod(value, attoPerGwei, rem)
	frac := new(uint256.Int).Div(rem, gweiFracScale).Uint64()
	return fmt.Sprintf("%s.%02d", whole.Dec(), frac)
}

// AddressClass is the local classification of a Flow EVM address
type AddressClass int

const (
	// AddressRegular is an ordinary EOA or contract address
	AddressRegular AddressClass = iota
	// AddressCOA lies in the Cadence-Owned Account space
	AddressCOA
	// AddressCOAFactory is the COA factory address itself
	AddressCOAFactory
	// AddressReservedSystem lies in the Flow system contract space
	AddressReservedSystem
)

func (c AddressClass) String() string {
	switch c {
	case AddressCOA:
		return "COA"
	case AddressCOAFactory:
		return "COA factory"
	case AddressReservedSystem:
		return "reserved system"
	default:
		return "regular"
	}
}

// ClassifyAddress classifies an address by its reserved prefix. The
// comparison is case-insensitive and makes no network call.
func ClassifyAddress(address string) AddressClass {
	lower := strings.ToLower(address)
	switch {
	case lower == COAFactoryAddress:
		return AddressCOAFactory
	case strings.HasPrefix(lower, COAPrefix):
		return AddressCOA
	case strings.HasPrefix(lower, ReservedSystemPrefix):
		return AddressReservedSystem
	default:
		return AddressRegular
	}
}

// ExplorerTxURL builds a block-explorer link for a transaction hash
func ExplorerTxURL(explorerBase, txHash string) string {
	return strings.TrimSuffix(explorerBase, "/") + "/tx/" + txHash
}

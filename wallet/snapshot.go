package wallet

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultProtocolFamily = "evm"
	DefaultNetworkID      = "base-sepolia"
	DefaultChainID        = 84532
	DefaultETHBalance     = "0"
)

var (
	hexAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	leadingDigits     = regexp.MustCompile(`^\d+`)
)

// Snapshot is the structured wallet record recovered from an agent response.
// A Snapshot is either nil or has every field populated.
type Snapshot struct {
	Address        string            `json:"address"`
	ProtocolFamily string            `json:"protocol_family"`
	NetworkID      string            `json:"network_id"`
	ChainID        int               `json:"chain_id"`
	ETHBalance     string            `json:"eth_balance"`
	Balances       map[string]string `json:"balances"`
}

// Defaults are the values substituted for optional fields the agent left out.
type Defaults struct {
	ProtocolFamily string
	NetworkID      string
	ChainID        int
	ETHBalance     string
}

func DefaultValues() Defaults {
	return Defaults{
		ProtocolFamily: DefaultProtocolFamily,
		NetworkID:      DefaultNetworkID,
		ChainID:        DefaultChainID,
		ETHBalance:     DefaultETHBalance,
	}
}

// RawFields holds the sub-field values found inside a Wallet Details block.
// A nil pointer means the field was not present.
type RawFields struct {
	Address        *string
	ProtocolFamily *string
	NetworkID      *string
	ChainID        *string
	ETHBalance     *string
	Balances       map[string]string
}

// Build turns raw fields into a Snapshot. It returns nil when no valid
// address was found; every other missing or malformed field is defaulted.
func Build(fields RawFields, d Defaults) *Snapshot {
	if !fields.HasAddress() {
		return nil
	}

	address := strings.TrimSpace(*fields.Address)

	d = d.withFallbacks()

	balances := make(map[string]string, len(fields.Balances))
	for symbol, amount := range fields.Balances {
		balances[symbol] = amount
	}

	return &Snapshot{
		Address:        address,
		ProtocolFamily: valueOr(fields.ProtocolFamily, d.ProtocolFamily),
		NetworkID:      valueOr(fields.NetworkID, d.NetworkID),
		ChainID:        parseChainID(fields.ChainID, d.ChainID),
		ETHBalance:     valueOr(fields.ETHBalance, d.ETHBalance),
		Balances:       balances,
	}
}

// HasAddress reports whether the fields carry a hex address, the one field
// a Snapshot cannot be built without.
func (f RawFields) HasAddress() bool {
	return f.Address != nil && hexAddressPattern.MatchString(strings.TrimSpace(*f.Address))
}

func (d Defaults) withFallbacks() Defaults {
	if d.ProtocolFamily == "" {
		d.ProtocolFamily = DefaultProtocolFamily
	}
	if d.NetworkID == "" {
		d.NetworkID = DefaultNetworkID
	}
	if d.ChainID == 0 {
		d.ChainID = DefaultChainID
	}
	if d.ETHBalance == "" {
		d.ETHBalance = DefaultETHBalance
	}
	return d
}

func parseChainID(raw *string, fallback int) int {
	if raw == nil {
		return fallback
	}

	digits := leadingDigits.FindString(strings.TrimSpace(*raw))
	if digits == "" {
		return fallback
	}

	id, err := strconv.Atoi(digits)
	if err != nil {
		return fallback
	}

	return id
}

func valueOr(raw *string, fallback string) string {
	if raw == nil {
		return fallback
	}

	if v := strings.TrimSpace(*raw); v != "" {
		return v
	}

	return fallback
}

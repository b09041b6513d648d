package chain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const EtherDecimals = 18

// FormatUnits renders amount / 10^decimals without trailing zeros.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}

	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

package wallet

import (
	"fmt"
	"sort"
	"strings"
)

func ShortenAddress(address string) string {
	if len(address) <= 8 {
		return address
	}
	return address[:4] + "..." + address[len(address)-4:]
}

// FormatSnapshot renders the details panel shown next to a reply.
func FormatSnapshot(s *Snapshot) string {
	if s == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Wallet Details [%s]\n", s.NetworkID)
	fmt.Fprintf(&b, "  Address:  %s\n", ShortenAddress(s.Address))
	fmt.Fprintf(&b, "  Protocol: %s\n", s.ProtocolFamily)
	fmt.Fprintf(&b, "  Chain ID: %d\n", s.ChainID)
	b.WriteString("  Balances:\n")
	fmt.Fprintf(&b, "    %-16s %s\n", "ETH", s.ETHBalance)

	symbols := make([]string, 0, len(s.Balances))
	for symbol := range s.Balances {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		fmt.Fprintf(&b, "    %-16s %s\n", symbol, s.Balances[symbol])
	}

	return b.String()
}

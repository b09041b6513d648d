package wallet

import (
	"encoding/json"
	"regexp"
	"strings"
)

const (
	// GrammarVersion identifies the label set PatternExtractor understands.
	GrammarVersion = "v1"
	Header         = "Wallet Details:"
	TaggedFence    = "wallet-details"

	blockTerminator = "\n\n"
	labelTrimSet    = " \t\r*"
)

var (
	addressPattern        = regexp.MustCompile(`(?m)^[ \t*\-]*Address:[ \t*]*(0x[0-9a-fA-F]+)\b`)
	protocolFamilyPattern = fieldPattern("Protocol Family")
	networkIDPattern      = fieldPattern("Network ID")
	chainIDPattern        = fieldPattern("Chain ID")
	ethBalancePattern     = fieldPattern("ETH Balance")

	taggedPattern = regexp.MustCompile("(?s)```" + TaggedFence + "[ \t]*\n(.*?)```")
)

//go:generate mockgen -destination=extractormocks_test.go -package=wallet_test github.com/kardolus/onchain-agent/wallet Extractor
type Extractor interface {
	Extract(text string) (Block, bool)
}

// Block is the span of a located wallet section together with the fields
// found inside it. Separator is the length of the blank-line separator that
// directly follows the block (0 when the block runs to the end of the text).
type Block struct {
	Start     int
	End       int
	Separator int
	Fields    RawFields
}

// PatternExtractor reads the free-text "Wallet Details:" block.
type PatternExtractor struct{}

// Ensure PatternExtractor implements the Extractor interface
var _ Extractor = PatternExtractor{}

// Extract locates the first Wallet Details header and reads the section up to
// the first blank line (or the end of the text).
func (PatternExtractor) Extract(text string) (Block, bool) {
	start := strings.Index(text, Header)
	if start == -1 {
		return Block{}, false
	}

	end, separator := len(text), 0
	if i := strings.Index(text[start:], blockTerminator); i != -1 {
		end = start + i
		separator = len(blockTerminator)
	}

	section := text[start:end]

	return Block{
		Start:     start,
		End:       end,
		Separator: separator,
		Fields: RawFields{
			Address:        submatch(addressPattern, section),
			ProtocolFamily: submatch(protocolFamilyPattern, section),
			NetworkID:      submatch(networkIDPattern, section),
			ChainID:        submatch(chainIDPattern, section),
			ETHBalance:     submatch(ethBalancePattern, section),
		},
	}, true
}

// TaggedExtractor reads a fenced ```wallet-details JSON segment, the only
// form that carries token balances.
type TaggedExtractor struct{}

var _ Extractor = TaggedExtractor{}

type taggedPayload struct {
	Address        *string           `json:"address"`
	ProtocolFamily *string           `json:"protocol_family"`
	NetworkID      *string           `json:"network_id"`
	ChainID        json.RawMessage   `json:"chain_id"`
	ETHBalance     *string           `json:"eth_balance"`
	Balances       map[string]string `json:"balances"`
}

func (TaggedExtractor) Extract(text string) (Block, bool) {
	loc := taggedPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return Block{}, false
	}

	var payload taggedPayload
	if err := json.Unmarshal([]byte(text[loc[2]:loc[3]]), &payload); err != nil {
		return Block{}, false
	}

	start, end := loc[0], loc[1]
	separator := 0
	if strings.HasPrefix(text[end:], blockTerminator) {
		separator = len(blockTerminator)
	}

	fields := RawFields{
		Address:        payload.Address,
		ProtocolFamily: payload.ProtocolFamily,
		NetworkID:      payload.NetworkID,
		ETHBalance:     payload.ETHBalance,
		Balances:       payload.Balances,
	}
	if len(payload.ChainID) != 0 && string(payload.ChainID) != "null" {
		id := strings.Trim(string(payload.ChainID), `"`)
		fields.ChainID = &id
	}

	return Block{Start: start, End: end, Separator: separator, Fields: fields}, true
}

// ChainExtractor returns the first block that carries a valid address. When
// no extractor finds one, the first block found is returned so the caller can
// still strip it from the display text.
type ChainExtractor []Extractor

var _ Extractor = ChainExtractor{}

func (c ChainExtractor) Extract(text string) (Block, bool) {
	var (
		first Block
		found bool
	)

	for _, e := range c {
		block, ok := e.Extract(text)
		if !ok {
			continue
		}
		if block.Fields.HasAddress() {
			return block, true
		}
		if !found {
			first, found = block, true
		}
	}

	return first, found
}

func fieldPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t*\-]*` + regexp.QuoteMeta(label) + `:(.*)$`)
}

func submatch(re *regexp.Regexp, section string) *string {
	m := re.FindStringSubmatch(section)
	if m == nil {
		return nil
	}

	v := strings.Trim(m[1], labelTrimSet)
	if v == "" {
		return nil
	}

	return &v
}

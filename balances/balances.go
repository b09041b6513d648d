package balances

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/kardolus/onchain-agent/chain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentTokens = 4

// Lookup returns the token balances held by an address, keyed by symbol.
//
//go:generate mockgen -destination=lookupmocks_test.go -package=balances_test github.com/kardolus/onchain-agent/balances Lookup
type Lookup interface {
	Balances(ctx context.Context, address string) (map[string]string, error)
}

// TokenSource reads a raw ERC20 balance. Both the explorer client and the
// JSON-RPC client satisfy it.
//
//go:generate mockgen -destination=sourcemocks_test.go -package=balances_test github.com/kardolus/onchain-agent/balances TokenSource
type TokenSource interface {
	TokenBalance(ctx context.Context, contract, address string) (*big.Int, error)
}

type Token struct {
	Symbol   string
	Contract string
	Decimals uint8
}

// StaticLookup serves fixed balances; addresses compare case-insensitively.
type StaticLookup struct {
	balances map[string]map[string]string
}

var _ Lookup = &StaticLookup{}

func NewStaticLookup(balances map[string]map[string]string) *StaticLookup {
	normalized := make(map[string]map[string]string, len(balances))
	for address, held := range balances {
		normalized[strings.ToLower(address)] = held
	}
	return &StaticLookup{balances: normalized}
}

// Balances returns a copy; unknown addresses hold nothing.
func (s *StaticLookup) Balances(_ context.Context, address string) (map[string]string, error) {
	result := map[string]string{}
	for symbol, amount := range s.balances[strings.ToLower(address)] {
		result[symbol] = amount
	}
	return result, nil
}

// DemoFixture holds the two demo portfolios used to exercise the risk advisor.
func DemoFixture() map[string]map[string]string {
	return map[string]map[string]string{
		"0x0D476789a3B7C3D19cA3E02394a934bb84fC31D3": {
			"USDC":            "100",
			"TRUMPDOGECOINAI": "10",
			"WSTETH":          "5",
		},
		"0x4eEB70cf969eF8b175547E7cA0d8D5fe4eae79d9": {
			"USDC":   "20",
			"WSTETH": "0",
		},
	}
}

// TokenLookup fetches every configured token concurrently. Zero balances are
// left out: holding zero of a token means not holding it.
type TokenLookup struct {
	source TokenSource
	tokens []Token
	logger *zap.Logger
}

var _ Lookup = &TokenLookup{}

func NewTokenLookup(source TokenSource, tokens []Token, logger *zap.Logger) *TokenLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenLookup{source: source, tokens: tokens, logger: logger.Named("balances")}
}

func (t *TokenLookup) Balances(ctx context.Context, address string) (map[string]string, error) {
	var (
		mu     sync.Mutex
		result = make(map[string]string, len(t.tokens))
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentTokens)

	for _, token := range t.tokens {
		token := token
		eg.Go(func() error {
			raw, err := t.source.TokenBalance(egCtx, token.Contract, address)
			if err != nil {
				t.logger.Error("Failed to get token balance",
					zap.String("token", token.Symbol),
					zap.String("address", address),
					zap.Error(err))
				return fmt.Errorf("failed to get %s balance: %w", token.Symbol, err)
			}

			if raw.Sign() == 0 {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			result[token.Symbol] = chain.FormatUnits(raw, token.Decimals)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

package explorer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/kardolus/onchain-agent/api/http"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultRPS   = 5
	defaultBurst = 1

	statusOK        = "1"
	txPageSize      = 10
	tokenTxPageSize = 100
	latestEndBlock  = 99999999
)

// APIError is returned when the explorer answers with a non-"1" status.
type APIError struct {
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}

type envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Result  jsoniter.RawMessage `json:"result"`
}

type Transaction struct {
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	Gas             string `json:"gas"`
	GasPrice        string `json:"gasPrice"`
	GasUsed         string `json:"gasUsed"`
	IsError         string `json:"isError"`
	ContractAddress string `json:"contractAddress"`
	FunctionName    string `json:"functionName"`
}

type TokenTransfer struct {
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
}

// Client talks to an Etherscan-compatible account API (Basescan).
type Client struct {
	caller  http.Caller
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

type Option func(*Client)

// WithRateLimit throttles requests to rps per second; rps <= 0 disables it.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), defaultBurst)
	}
}

func New(caller http.Caller, baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		caller:  caller,
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(DefaultRPS), defaultBurst),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Transactions returns the first page of normal transactions, oldest first.
func (c *Client) Transactions(ctx context.Context, address string) ([]Transaction, error) {
	params := url.Values{
		"action":     {"txlist"},
		"address":    {address},
		"startblock": {"0"},
		"endblock":   {strconv.Itoa(latestEndBlock)},
		"page":       {"1"},
		"offset":     {strconv.Itoa(txPageSize)},
		"sort":       {"asc"},
	}

	var result []Transaction
	if err := c.call(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for %s: %w", address, err)
	}

	return result, nil
}

func (c *Client) TokenTransactions(ctx context.Context, contract, address string) ([]TokenTransfer, error) {
	params := url.Values{
		"action":          {"tokentx"},
		"contractaddress": {contract},
		"address":         {address},
		"startblock":      {"0"},
		"endblock":        {strconv.Itoa(latestEndBlock)},
		"page":            {"1"},
		"offset":          {strconv.Itoa(tokenTxPageSize)},
		"sort":            {"asc"},
	}

	var result []TokenTransfer
	if err := c.call(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch token transactions for %s: %w", address, err)
	}

	return result, nil
}

// TokenBalance returns the raw ERC20 balance in the token's smallest unit.
func (c *Client) TokenBalance(ctx context.Context, contract, address string) (*big.Int, error) {
	params := url.Values{
		"action":          {"tokenbalance"},
		"contractaddress": {contract},
		"address":         {address},
		"tag":             {"latest"},
	}

	balance, err := c.amount(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token balance for %s: %w", address, err)
	}

	return balance, nil
}

// EtherBalance returns the native balance in wei.
func (c *Client) EtherBalance(ctx context.Context, address string) (*big.Int, error) {
	params := url.Values{
		"action":  {"balance"},
		"address": {address},
		"tag":     {"latest"},
	}

	balance, err := c.amount(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ether balance for %s: %w", address, err)
	}

	return balance, nil
}

func (c *Client) amount(ctx context.Context, params url.Values) (*big.Int, error) {
	var raw string
	if err := c.call(ctx, params, &raw); err != nil {
		return nil, err
	}

	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", raw)
	}

	return value, nil
}

func (c *Client) call(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("module", "account")
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	raw, err := c.caller.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if env.Status != statusOK {
		apiErr := &APIError{Message: env.Message}
		_ = json.Unmarshal(env.Result, &apiErr.Detail)
		return apiErr
	}

	if len(env.Result) == 0 {
		return errors.New("empty result")
	}

	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}

	return nil
}

package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	DefaultDialTimeout = 10 * time.Second
	DefaultCallTimeout = 15 * time.Second
)

// minimal ERC20 ABI, balanceOf only
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
)

func erc20() abi.ABI {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
	})
	return parsedERC20ABI
}

// Client reads balances from an EVM JSON-RPC endpoint.
type Client struct {
	eth         *ethclient.Client
	callTimeout time.Duration
}

func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultDialTimeout)
	defer cancel()

	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return &Client{eth: eth, callTimeout: DefaultCallTimeout}, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	return c.eth.ChainID(ctx)
}

// NativeBalance returns the latest balance of address in wei.
func (c *Client) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	balance, err := c.eth.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance for %s: %w", address, err)
	}

	return balance, nil
}

// TokenBalance calls balanceOf(address) on an ERC20 contract and returns the
// raw amount in the token's smallest unit.
func (c *Client) TokenBalance(ctx context.Context, token, address string) (*big.Int, error) {
	if !common.IsHexAddress(token) {
		return nil, fmt.Errorf("invalid token contract %q", token)
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}

	data, err := erc20().Pack("balanceOf", common.HexToAddress(address))
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf: %w", err)
	}

	to := common.HexToAddress(token)

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call to %s failed: %w", token, err)
	}

	if len(out) == 0 {
		return big.NewInt(0), nil
	}

	unpacked, err := erc20().Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result from %s: %w", token, err)
	}

	balance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type %T", unpacked[0])
	}

	return balance, nil
}

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/kardolus/onchain-agent/balances"
	"github.com/kardolus/onchain-agent/chain"
	"github.com/kardolus/onchain-agent/explorer"
	"github.com/kardolus/onchain-agent/walletdata"
)

const (
	ToolTransactionsHistory = "get_transactions_history"
	ToolERC20Balances       = "get_erc20_balances"
	ToolTokenTransactions   = "get_token_transactions"
	ToolWalletDetails       = "get_wallet_details"
	ToolETHBalance          = "get_eth_balance"

	emptySchema   = `{"type":"object","properties":{}}`
	addressSchema = `{"type":"object","properties":{"address":{"type":"string","description":"%s"}},"required":["address"]}`
	tokenTxSchema = `{"type":"object","properties":{` +
		`"contract_address":{"type":"string","description":"The ERC20 token contract"},` +
		`"address":{"type":"string","description":"The account whose transfers to list"}},` +
		`"required":["contract_address","address"]}`
)

//go:generate mockgen -destination=explorermocks_test.go -package=agent_test github.com/kardolus/onchain-agent/agent TransactionsSource
type TransactionsSource interface {
	Transactions(ctx context.Context, address string) ([]explorer.Transaction, error)
	TokenTransactions(ctx context.Context, contract, address string) ([]explorer.TokenTransfer, error)
}

//go:generate mockgen -destination=balancermocks_test.go -package=agent_test github.com/kardolus/onchain-agent/agent NativeBalancer
type NativeBalancer interface {
	NativeBalance(ctx context.Context, address string) (*big.Int, error)
}

//go:generate mockgen -destination=walletmocks_test.go -package=agent_test github.com/kardolus/onchain-agent/agent WalletSource
type WalletSource interface {
	Wallet() (walletdata.Data, error)
}

// Network describes the chain the agent's own wallet lives on.
type Network struct {
	ProtocolFamily string
	NetworkID      string
	ChainID        int
}

// OnchainTools returns the read-only tool set in the order they are offered
// to the model.
func OnchainTools(txs TransactionsSource, lookup balances.Lookup, wallet WalletSource, native NativeBalancer, network Network) []Tool {
	return []Tool{
		transactionsHistoryTool(txs),
		erc20BalancesTool(lookup),
		tokenTransactionsTool(txs),
		walletDetailsTool(wallet, native, network),
		ethBalanceTool(native),
	}
}

type addressArgs struct {
	Address         string `json:"address"`
	ContractAddress string `json:"contract_address"`
}

func transactionsHistoryTool(txs TransactionsSource) Tool {
	return FuncTool{
		ToolName:        ToolTransactionsHistory,
		ToolDescription: "Get transactions history of a wallet",
		Schema:          json.RawMessage(fmt.Sprintf(addressSchema, "The address to retrieve transactions history from")),
		Fn: func(ctx context.Context, raw json.RawMessage) (string, error) {
			address, err := parseAddress(raw)
			if err != nil {
				return "", err
			}

			transactions, err := txs.Transactions(ctx, address)
			if err != nil {
				return "", err
			}

			return encode(map[string]any{
				"message":      "Transactions history for address " + address,
				"transactions": transactions,
			})
		},
	}
}

func erc20BalancesTool(lookup balances.Lookup) Tool {
	return FuncTool{
		ToolName:        ToolERC20Balances,
		ToolDescription: "Get balances of all cryptocurrencies held by an account address",
		Schema:          json.RawMessage(fmt.Sprintf(addressSchema, "The account to get balances from")),
		Fn: func(ctx context.Context, raw json.RawMessage) (string, error) {
			address, err := parseAddress(raw)
			if err != nil {
				return "", err
			}

			held, err := lookup.Balances(ctx, address)
			if err != nil {
				return "", err
			}

			return encode(map[string]any{
				"message":  "Balances for address " + address,
				"balances": held,
			})
		},
	}
}

func tokenTransactionsTool(txs TransactionsSource) Tool {
	return FuncTool{
		ToolName:        ToolTokenTransactions,
		ToolDescription: "Get the ERC20 transfers of one token for a wallet",
		Schema:          json.RawMessage(tokenTxSchema),
		Fn: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var args addressArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			if err := validateAddress("contract_address", args.ContractAddress); err != nil {
				return "", err
			}
			if err := validateAddress("address", args.Address); err != nil {
				return "", err
			}

			transfers, err := txs.TokenTransactions(ctx, args.ContractAddress, args.Address)
			if err != nil {
				return "", err
			}

			return encode(map[string]any{
				"message":      fmt.Sprintf("Token transactions of %s for address %s", args.ContractAddress, args.Address),
				"transactions": transfers,
			})
		},
	}
}

func walletDetailsTool(wallet WalletSource, native NativeBalancer, network Network) Tool {
	return FuncTool{
		ToolName:        ToolWalletDetails,
		ToolDescription: "Get the details of the agent's own wallet: address, network and ETH balance",
		Schema:          json.RawMessage(emptySchema),
		Fn: func(ctx context.Context, _ json.RawMessage) (string, error) {
			data, err := wallet.Wallet()
			if err != nil {
				return "", err
			}

			networkID := network.NetworkID
			if data.NetworkID != "" {
				networkID = data.NetworkID
			}

			balance, err := native.NativeBalance(ctx, data.DefaultAddress)
			if err != nil {
				return "", err
			}

			var b strings.Builder
			b.WriteString("Wallet Details:\n")
			b.WriteString("- Address: " + data.DefaultAddress + "\n")
			b.WriteString("- Protocol Family: " + network.ProtocolFamily + "\n")
			b.WriteString("- Network ID: " + networkID + "\n")
			b.WriteString("- Chain ID: " + strconv.Itoa(network.ChainID) + "\n")
			b.WriteString("- ETH Balance: " + chain.FormatUnits(balance, chain.EtherDecimals))
			return b.String(), nil
		},
	}
}

func ethBalanceTool(native NativeBalancer) Tool {
	return FuncTool{
		ToolName:        ToolETHBalance,
		ToolDescription: "Get the native ETH balance of an address",
		Schema:          json.RawMessage(fmt.Sprintf(addressSchema, "The address to get the ETH balance of")),
		Fn: func(ctx context.Context, raw json.RawMessage) (string, error) {
			address, err := parseAddress(raw)
			if err != nil {
				return "", err
			}

			balance, err := native.NativeBalance(ctx, address)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("ETH balance of %s: %s ETH", address, chain.FormatUnits(balance, chain.EtherDecimals)), nil
		},
	}
}

func parseAddress(raw json.RawMessage) (string, error) {
	var args addressArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if err := validateAddress("address", args.Address); err != nil {
		return "", err
	}
	return args.Address, nil
}

func validateAddress(field, value string) error {
	if !common.IsHexAddress(value) {
		return fmt.Errorf("invalid %s %q", field, value)
	}
	return nil
}

func encode(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

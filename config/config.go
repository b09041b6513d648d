package config

import "time"

type Config struct {
	Provider           string        `yaml:"provider"`
	APIKey             string        `yaml:"api_key"`
	APIKeyFile         string        `yaml:"api_key_file"`
	Model              string        `yaml:"model"`
	URL                string        `yaml:"url"`
	CompletionsPath    string        `yaml:"completions_path"`
	AuthHeader         string        `yaml:"auth_header"`
	AuthTokenPrefix    string        `yaml:"auth_token_prefix"`
	Thread             string        `yaml:"thread"`
	OmitHistory        bool          `yaml:"omit_history"`
	CommandPrompt      string        `yaml:"command_prompt"`
	MaxIterations      int           `yaml:"max_iterations"`
	NetworkID          string        `yaml:"network_id"`
	ProtocolFamily     string        `yaml:"protocol_family"`
	ChainID            int           `yaml:"chain_id"`
	RPCURL             string        `yaml:"rpc_url"`
	ExplorerURL        string        `yaml:"explorer_url"`
	ExplorerAPIKey     string        `yaml:"explorer_api_key"`
	ExplorerAPIKeyFile string        `yaml:"explorer_api_key_file"`
	ExplorerRPS        float64       `yaml:"explorer_rps"`
	WalletAddress      string        `yaml:"wallet_address"`
	WalletDataFile     string        `yaml:"wallet_data_file"`
	Tokens             []Token       `yaml:"tokens"`
	HTTPAddr           string        `yaml:"http_addr"`
	AutoInterval       time.Duration `yaml:"auto_interval"`
	BalanceCacheTTL    time.Duration `yaml:"balance_cache_ttl"`
	LogLevel           string        `yaml:"log_level"`
}

// Token is an ERC20 contract the agent reports balances for.
type Token struct {
	Symbol   string `yaml:"symbol"`
	Contract string `yaml:"contract"`
	Decimals uint8  `yaml:"decimals"`
}

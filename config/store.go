package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kardolus/onchain-agent/internal"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderCohere = "cohere"

	defaultModel           = "gpt-4o-mini"
	DefaultCohereModel     = "command-r"
	defaultURL             = "https://api.openai.com"
	defaultCompletionsPath = "/v1/chat/completions"
	defaultAuthHeader      = "Authorization"
	defaultAuthTokenPrefix = "Bearer "
	defaultThread          = "onchain-agent"
	defaultCommandPrompt   = "Prompt:"
	defaultMaxIterations   = 10
	defaultNetworkID       = "base-sepolia"
	defaultProtocolFamily  = "evm"
	defaultChainID         = 84532
	defaultRPCURL          = "https://sepolia.base.org"
	defaultExplorerURL     = "https://api-sepolia.basescan.org/api"
	defaultExplorerRPS     = 5
	defaultWalletDataFile  = "wallet_data.txt"
	defaultHTTPAddr        = ":8080"
	defaultAutoInterval    = 10 * time.Second
	defaultBalanceCacheTTL = time.Minute
	defaultLogLevel        = "info"
)

// DefaultTokens are the Base Sepolia contracts the portfolio advisor knows.
var DefaultTokens = []Token{
	{Symbol: "USDC", Contract: "0x036CbD53842c5426634e7929541eC2318f3dCF7e", Decimals: 6},
	{Symbol: "TRUMPDOGECOINAI", Contract: "0x6611de7ee6B5Ba3BEDffB241de0533feA00f032c", Decimals: 18},
	{Symbol: "WSTETH", Contract: "0x13e5FB0B6534BB22cBC59Fae339dbBE0Dc906871", Decimals: 18},
}

//go:generate mockgen -destination=storemocks_test.go -package=config_test github.com/kardolus/onchain-agent/config Store
type Store interface {
	Read() (Config, error)
	ReadDefaults() Config
	Write(Config) error
}

// Ensure FileIO implements Store interface
var _ Store = &FileIO{}

type FileIO struct {
	configFilePath string
}

func New() *FileIO {
	configPath, _ := getPath()

	return &FileIO{configFilePath: configPath}
}

func (f *FileIO) WithConfigPath(configFilePath string) *FileIO {
	f.configFilePath = configFilePath
	return f
}

func (f *FileIO) Read() (Config, error) {
	return parseFile(f.configFilePath)
}

func (f *FileIO) ReadDefaults() Config {
	tokens := make([]Token, len(DefaultTokens))
	copy(tokens, DefaultTokens)

	return Config{
		Provider:        ProviderOpenAI,
		Model:           defaultModel,
		URL:             defaultURL,
		CompletionsPath: defaultCompletionsPath,
		AuthHeader:      defaultAuthHeader,
		AuthTokenPrefix: defaultAuthTokenPrefix,
		Thread:          defaultThread,
		CommandPrompt:   defaultCommandPrompt,
		MaxIterations:   defaultMaxIterations,
		NetworkID:       defaultNetworkID,
		ProtocolFamily:  defaultProtocolFamily,
		ChainID:         defaultChainID,
		RPCURL:          defaultRPCURL,
		ExplorerURL:     defaultExplorerURL,
		ExplorerRPS:     defaultExplorerRPS,
		WalletDataFile:  defaultWalletDataFile,
		Tokens:          tokens,
		HTTPAddr:        defaultHTTPAddr,
		AutoInterval:    defaultAutoInterval,
		BalanceCacheTTL: defaultBalanceCacheTTL,
		LogLevel:        defaultLogLevel,
	}
}

func (f *FileIO) Write(config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.configFilePath), 0755); err != nil {
		return err
	}

	return os.WriteFile(f.configFilePath, data, 0644)
}

func getPath() (string, error) {
	homeDir, err := internal.GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, "config.yaml"), nil
}

func parseFile(fileName string) (Config, error) {
	var result Config

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, err
	}

	return result, nil
}

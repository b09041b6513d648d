package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kardolus/onchain-agent/agent"
	apihttp "github.com/kardolus/onchain-agent/api/http"
	"github.com/kardolus/onchain-agent/balances"
	"github.com/kardolus/onchain-agent/chain"
	"github.com/kardolus/onchain-agent/cmd/onchain-agent/utils"
	"github.com/kardolus/onchain-agent/config"
	"github.com/kardolus/onchain-agent/explorer"
	"github.com/kardolus/onchain-agent/history"
	"github.com/kardolus/onchain-agent/internal"
	"github.com/kardolus/onchain-agent/server"
	"github.com/kardolus/onchain-agent/wallet"
	"github.com/kardolus/onchain-agent/walletdata"
)

const (
	toolColor       = "blue"
	threadPrefix    = "int_"
	errUnknownMode  = "unknown mode %q, use chat or auto"
	errWalletExport = "failed to save wallet data: %w"
)

var (
	mode           string
	serveMode      bool
	autoMode       bool
	interval       time.Duration
	newThread      bool
	setThread      string
	showHistory    bool
	listThreads    bool
	clearHistory   bool
	showConfig     bool
	setCompletions string
	logLevel       string
	omitHistory    bool
	exportWallet   bool
	configPath     string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "onchain-agent [prompt]",
		Short: "An onchain agent and portfolio risk advisor",
		Long: "onchain-agent answers questions about wallets on an EVM network using read-only onchain tools. " +
			"Run it without arguments to pick a chat or autonomous session, pass a prompt for a single answer, " +
			"or use --serve to expose the agent over HTTP.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&mode, "mode", "", "Session mode: chat or auto (prompted for when empty)")
	flags.BoolVar(&autoMode, "auto", false, "Shorthand for --mode auto")
	flags.BoolVar(&serveMode, "serve", false, "Serve the agent over HTTP")
	flags.DurationVar(&interval, "interval", 0, "Time between autonomous actions (defaults to auto_interval)")
	flags.BoolVarP(&newThread, "new-thread", "n", false, "Start a new conversation thread")
	flags.StringVar(&setThread, "thread", "", "Use the given conversation thread")
	flags.BoolVar(&showHistory, "show-history", false, "Print the conversation of the current thread")
	flags.BoolVar(&listThreads, "list-threads", false, "List the stored conversation threads")
	flags.BoolVar(&clearHistory, "clear-history", false, "Delete the conversation of the current thread")
	flags.BoolVar(&showConfig, "config", false, "Print the effective configuration")
	flags.StringVar(&setCompletions, "set-completions", "", "Print the completion script for bash, zsh, fish or powershell")
	flags.StringVar(&logLevel, "log-level", "", "Console log level: debug, info or quiet")
	flags.BoolVar(&omitHistory, "omit-history", false, "Do not read or write conversation history")
	flags.BoolVar(&exportWallet, "export-wallet", false, "Write the agent's wallet data file and exit")
	flags.StringVar(&configPath, "config-path", "", "Read the configuration from this file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if setCompletions != "" {
		return config.GenCompletions(cmd, setCompletions, cmd.OutOrStdout())
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	store := config.New()
	if configPath != "" {
		store = store.WithConfigPath(configPath)
	}
	manager := config.NewManager(store).WithEnvironment(viper.New())
	cfg := &manager.Config

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	internal.SetAllowedLogLevels(internal.LevelsFor(cfg.LogLevel)...)
	logger := zap.L()
	defer func() { _ = logger.Sync() }()

	if showConfig {
		out, err := manager.ShowConfig()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	hs, err := history.New()
	if err != nil {
		return err
	}
	switch {
	case newThread:
		cfg.Thread = internal.GenerateUniqueSlug(threadPrefix)
	case setThread != "":
		cfg.Thread = setThread
	}
	hs.SetThread(cfg.Thread)

	if done, err := handleHistoryFlags(cmd.OutOrStdout(), hs); done || err != nil {
		return err
	}

	if err := manager.ResolveAPIKey(); err != nil {
		return err
	}
	warnings, err := manager.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	walletPath, err := utils.DataPath(cfg.WalletDataFile)
	if err != nil {
		return err
	}
	walletProvider := walletdata.NewProvider(walletdata.NewFileStore(walletPath), cfg.WalletAddress, cfg.NetworkID)

	if exportWallet {
		if err := walletProvider.Export(); err != nil {
			return fmt.Errorf(errWalletExport, err)
		}
		logger.Info("wallet data saved", zap.String("path", walletPath))
		return nil
	}

	logger.Info("Starting Agent...")

	onchain, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return err
	}
	defer onchain.Close()

	logs, err := agent.NewLogs()
	if err != nil {
		return err
	}
	defer logs.Close()

	subject := newAgent(cfg, hs, onchain, walletProvider, logs, logger)

	// Persist the wallet once it resolves, like a fresh install would.
	if _, err := walletProvider.Wallet(); err != nil {
		logger.Warn("agent wallet unavailable", zap.Error(err))
	}

	interpreter := wallet.NewInterpreter(
		wallet.WithLogger(logger),
		wallet.WithDefaults(wallet.Defaults{
			ProtocolFamily: cfg.ProtocolFamily,
			NetworkID:      cfg.NetworkID,
			ChainID:        cfg.ChainID,
		}),
	)

	if serveMode {
		srv := server.New(subject, server.WithLogger(logger), server.WithInterpreter(interpreter))
		return srv.Run(ctx, cfg.HTTPAddr)
	}

	printer := utils.NewChunkPrinter(cmd.OutOrStdout(), interpreter, toolColor)

	if len(args) > 0 {
		return subject.Stream(ctx, strings.Join(args, " "), printer.Print)
	}

	selected, err := resolveMode(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	switch selected {
	case utils.ModeChat:
		return runChat(ctx, cfg, subject, printer, cmd.OutOrStdout())
	default:
		every := interval
		if every <= 0 {
			every = cfg.AutoInterval
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Starting autonomous mode...")
		err := subject.RunAutonomous(ctx, every, printer.Print)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func newAgent(cfg *config.Config, hs history.Store, onchain *chain.Client, wp *walletdata.Provider, logs *agent.Logs, logger *zap.Logger) *agent.Agent {
	explorerClient := explorer.New(
		apihttp.New(apihttp.WithTimeout(30*time.Second)),
		cfg.ExplorerURL,
		cfg.ExplorerAPIKey,
		explorer.WithRateLimit(cfg.ExplorerRPS),
	)

	tokens := make([]balances.Token, 0, len(cfg.Tokens))
	for _, t := range cfg.Tokens {
		tokens = append(tokens, balances.Token{Symbol: t.Symbol, Contract: t.Contract, Decimals: t.Decimals})
	}

	var source balances.TokenSource = onchain
	if cfg.ExplorerAPIKey != "" {
		source = explorerClient
	}
	lookup := balances.NewCachedLookup(balances.NewTokenLookup(source, tokens, logger), cfg.BalanceCacheTTL)

	registry := agent.NewRegistry(agent.OnchainTools(explorerClient, lookup, wp, onchain, agent.Network{
		ProtocolFamily: cfg.ProtocolFamily,
		NetworkID:      cfg.NetworkID,
		ChainID:        cfg.ChainID,
	})...)

	opts := append([]agent.Option{
		agent.WithHistory(hs, cfg.OmitHistory || omitHistory),
		agent.WithMaxIterations(cfg.MaxIterations),
	}, logs.Options()...)

	return agent.New(newLLM(cfg), registry, opts...)
}

func newLLM(cfg *config.Config) agent.LLM {
	if cfg.Provider == config.ProviderCohere {
		return agent.NewCohereLLM(cfg.APIKey, cfg.Model)
	}

	caller := apihttp.New(apihttp.WithAuth(cfg.AuthHeader, cfg.AuthTokenPrefix, cfg.APIKey))
	return agent.NewOpenAILLM(caller, cfg.Model, cfg.URL, cfg.CompletionsPath)
}

func handleHistoryFlags(out io.Writer, hs *history.FileIO) (bool, error) {
	switch {
	case clearHistory:
		if err := hs.Delete(); err != nil {
			return true, err
		}
		fmt.Fprintf(out, "History for thread %q cleared\n", hs.GetThread())
		return true, nil
	case listThreads:
		threads, err := history.NewHistory(hs).ListThreads()
		if err != nil {
			return true, err
		}
		for _, t := range threads {
			fmt.Fprintln(out, t)
		}
		return true, nil
	case showHistory:
		text, err := history.NewHistory(hs).Print(hs.GetThread())
		if err != nil {
			return true, err
		}
		fmt.Fprint(out, text)
		return true, nil
	}
	return false, nil
}

func resolveMode(out io.Writer) (utils.Mode, error) {
	if autoMode {
		return utils.ModeAuto, nil
	}
	if mode != "" {
		m, ok := utils.ParseMode(mode)
		if !ok {
			return "", fmt.Errorf(errUnknownMode, mode)
		}
		return m, nil
	}

	rl, err := readline.New("")
	if err != nil {
		return "", err
	}
	defer rl.Close()

	return utils.ChooseMode(func(prompt string) (string, error) {
		rl.SetPrompt(prompt)
		return rl.Readline()
	}, out)
}

func runChat(ctx context.Context, cfg *config.Config, subject *agent.Agent, printer *utils.ChunkPrinter, out io.Writer) error {
	fmt.Fprintln(out, "Starting chat mode... Type 'exit' to end.")

	rl, err := readline.New("")
	if err != nil {
		return err
	}
	defer rl.Close()

	for counter := 1; ; counter++ {
		rl.SetPrompt("\n" + config.FormatPrompt(cfg.CommandPrompt, counter, subject.Usage(), time.Now()))

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if utils.IsExit(line) {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := subject.Stream(ctx, line, printer.Print); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

package config

import "fmt"

// Network holds the values a network id implies.
type Network struct {
	ChainID     int
	RPCURL      string
	ExplorerURL string
}

var KnownNetworks = map[string]Network{
	defaultNetworkID: {
		ChainID:     defaultChainID,
		RPCURL:      defaultRPCURL,
		ExplorerURL: defaultExplorerURL,
	},
	"base-mainnet": {
		ChainID:     8453,
		RPCURL:      "https://mainnet.base.org",
		ExplorerURL: "https://api.basescan.org/api",
	},
}

// alignNetwork swaps chain_id, rpc_url and explorer_url for the values of the
// configured network when they still hold the values of some known network
// and were not set through the environment.
func (c *Manager) alignNetwork() {
	network, ok := KnownNetworks[c.Config.NetworkID]
	if !ok {
		return
	}

	var (
		chainIDs     = map[int]bool{}
		rpcURLs      = map[string]bool{}
		explorerURLs = map[string]bool{}
	)
	for _, n := range KnownNetworks {
		chainIDs[n.ChainID] = true
		rpcURLs[n.RPCURL] = true
		explorerURLs[n.ExplorerURL] = true
	}

	if chainIDs[c.Config.ChainID] && !c.fromEnv["chain_id"] {
		c.Config.ChainID = network.ChainID
	}
	if rpcURLs[c.Config.RPCURL] && !c.fromEnv["rpc_url"] {
		c.Config.RPCURL = network.RPCURL
	}
	if explorerURLs[c.Config.ExplorerURL] && !c.fromEnv["explorer_url"] {
		c.Config.ExplorerURL = network.ExplorerURL
	}
}

// networkWarning describes a chain_id that disagrees with network_id, or an
// empty string when they agree.
func networkWarning(cfg Config) string {
	network, ok := KnownNetworks[cfg.NetworkID]
	if !ok {
		return fmt.Sprintf("unknown network %s, using chain_id %d, rpc_url and explorer_url as configured", cfg.NetworkID, cfg.ChainID)
	}

	if cfg.ChainID != network.ChainID {
		return fmt.Sprintf("chain_id %d does not match %s (chain id %d)", cfg.ChainID, cfg.NetworkID, network.ChainID)
	}

	return ""
}

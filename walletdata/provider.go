package walletdata

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

var ErrNoWallet = errors.New("no wallet configured: set wallet_address or provide a wallet data file")

// Provider resolves the agent's own wallet. Stored data wins over the
// configured address; the configured address is persisted on first use.
type Provider struct {
	store     Store
	address   string
	networkID string

	mu   sync.Mutex
	data *Data
}

func NewProvider(store Store, address, networkID string) *Provider {
	return &Provider{store: store, address: address, networkID: networkID}
}

func (p *Provider) Wallet() (Data, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data != nil {
		return *p.data, nil
	}

	data, err := p.store.Read()
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		if p.address == "" {
			return Data{}, ErrNoWallet
		}
		data = Data{
			WalletID:       uuid.NewString(),
			NetworkID:      p.networkID,
			DefaultAddress: p.address,
		}
		if err := p.store.Write(data); err != nil {
			return Data{}, fmt.Errorf("failed to save wallet data: %w", err)
		}
	default:
		return Data{}, err
	}

	if !common.IsHexAddress(data.DefaultAddress) {
		return Data{}, fmt.Errorf("invalid wallet address %q", data.DefaultAddress)
	}
	if data.NetworkID == "" {
		data.NetworkID = p.networkID
	}

	p.data = &data
	return data, nil
}

// Export writes the resolved wallet back to the store.
func (p *Provider) Export() error {
	data, err := p.Wallet()
	if err != nil {
		return err
	}

	return p.store.Write(data)
}

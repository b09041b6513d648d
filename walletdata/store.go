package walletdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const DefaultFileName = "wallet_data.txt"

var ErrNotFound = errors.New("wallet data not found")

// Data is the persisted description of the agent's wallet. Seed is kept
// verbatim and never interpreted.
type Data struct {
	WalletID       string          `json:"wallet_id"`
	NetworkID      string          `json:"network_id"`
	DefaultAddress string          `json:"default_address"`
	Seed           json.RawMessage `json:"seed,omitempty"`
}

//go:generate mockgen -destination=storemocks_test.go -package=walletdata_test github.com/kardolus/onchain-agent/walletdata Store
type Store interface {
	Read() (Data, error)
	Write(Data) error
	Delete() error
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Ensure FileStore implements the Store interface
var _ Store = &FileStore{}

type FileStore struct {
	path string
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Read() (Data, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Data{}, ErrNotFound
	}
	if err != nil {
		return Data{}, err
	}

	var data Data
	if err := json.Unmarshal(b, &data); err != nil {
		return Data{}, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}

	return data, nil
}

// Write replaces the file atomically through a temp file in the same directory.
func (f *FileStore) Write(data Data) error {
	value, err := json.Marshal(data)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(value); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Rename may fail on Windows when the destination exists.
	if err := os.Rename(tmpName, f.path); err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, os.ErrPermission) {
			_ = os.Remove(f.path)
			return os.Rename(tmpName, f.path)
		}
		return err
	}

	return nil
}

func (f *FileStore) Delete() error {
	err := os.Remove(f.path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

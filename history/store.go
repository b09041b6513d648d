package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kardolus/onchain-agent/api"
	"github.com/kardolus/onchain-agent/internal"
)

const (
	DefaultThread = "onchain-agent"
	fileExtension = ".json"
)

type History struct {
	api.Message
	Timestamp time.Time `json:"timestamp,omitempty"`
}

//go:generate mockgen -destination=historymocks_test.go -package=history_test github.com/kardolus/onchain-agent/history Store
type Store interface {
	Delete() error
	List() ([]string, error)
	Read() ([]History, error)
	ReadThread(string) ([]History, error)
	Write([]History) error
	SetThread(thread string)
	GetThread() string
}

// Ensure FileIO implements the Store interface
var _ Store = &FileIO{}

type FileIO struct {
	historyDir string
	thread     string
}

func New() (*FileIO, error) {
	dataHome, err := internal.GetDataHome()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataHome, 0755); err != nil {
		return nil, err
	}

	return &FileIO{historyDir: dataHome, thread: DefaultThread}, nil
}

func (f *FileIO) WithDirectory(historyDir string) *FileIO {
	f.historyDir = historyDir
	return f
}

func (f *FileIO) SetThread(thread string) {
	f.thread = thread
}

func (f *FileIO) GetThread() string {
	return f.thread
}

func (f *FileIO) Delete() error {
	err := os.Remove(f.getPath(f.thread))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the names of the stored threads.
func (f *FileIO) List() ([]string, error) {
	entries, err := os.ReadDir(f.historyDir)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExtension) {
			continue
		}
		result = append(result, strings.TrimSuffix(entry.Name(), fileExtension))
	}

	return result, nil
}

func (f *FileIO) Read() ([]History, error) {
	return f.ReadThread(f.thread)
}

// ReadThread returns an empty history for a thread that was never written.
func (f *FileIO) ReadThread(thread string) ([]History, error) {
	buf, err := os.ReadFile(f.getPath(thread))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result []History
	if err := json.Unmarshal(buf, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (f *FileIO) Write(entries []History) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(f.getPath(f.thread), data, 0644)
}

func (f *FileIO) getPath(thread string) string {
	return filepath.Join(f.historyDir, thread+fileExtension)
}

package history

import (
	"fmt"
	"strings"

	"github.com/kardolus/onchain-agent/api"
)

type Manager struct {
	store Store
}

func NewHistory(store Store) *Manager {
	return &Manager{store: store}
}

// ParseUserHistory returns the prompts the user typed in a thread, oldest first.
func (h *Manager) ParseUserHistory(thread string) ([]string, error) {
	entries, err := h.store.ReadThread(thread)
	if err != nil {
		return nil, err
	}

	result := []string{}
	for _, entry := range entries {
		if entry.Role == api.UserRole {
			result = append(result, entry.Content)
		}
	}

	return result, nil
}

// ListThreads marks the active thread with an asterisk.
func (h *Manager) ListThreads() ([]string, error) {
	threads, err := h.store.List()
	if err != nil {
		return nil, err
	}

	var result []string
	for _, thread := range threads {
		if thread == h.store.GetThread() {
			result = append(result, fmt.Sprintf("* %s (current)", thread))
			continue
		}
		result = append(result, fmt.Sprintf("- %s", thread))
	}

	return result, nil
}

func (h *Manager) Print(thread string) (string, error) {
	entries, err := h.store.ReadThread(thread)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, entry := range entries {
		if entry.Role == api.SystemRole {
			continue
		}
		b.WriteString(formatHistory(entry))
	}

	return b.String(), nil
}

func formatHistory(entry History) string {
	var (
		emoji     string
		prefix    string
		timestamp string
		content   = entry.Content
	)

	switch entry.Role {
	case api.UserRole:
		emoji = "👤"
		prefix = "---\n"
		if !entry.Timestamp.IsZero() {
			timestamp = fmt.Sprintf(" [%s]", entry.Timestamp.Format("2006-01-02 15:04:05"))
		}
	case api.ToolRole:
		emoji = "🔧"
		prefix = "\n"
	case api.AssistantRole:
		emoji = "🤖"
		prefix = "\n"
		for _, call := range entry.ToolCalls {
			content += fmt.Sprintf("\n-> %s(%s)", call.Function.Name, call.Function.Arguments)
		}
		content = strings.TrimPrefix(content, "\n")
	}

	return fmt.Sprintf("%s**%s** %s%s:\n%s\n", prefix, strings.ToUpper(entry.Role), emoji, timestamp, content)
}

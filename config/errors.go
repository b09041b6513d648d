package config

import (
	"fmt"
	"strings"
)

// MissingEnvError lists the required variables that were not set.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	lines := make([]string, 0, len(e.Vars)+1)
	lines = append(lines, "required environment variables are not set")
	for _, name := range e.Vars {
		lines = append(lines, fmt.Sprintf("%s=your_%s_here", name, strings.ToLower(name)))
	}
	return strings.Join(lines, "\n")
}

type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q, expected %q or %q", e.Provider, ProviderOpenAI, ProviderCohere)
}

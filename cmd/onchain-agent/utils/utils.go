package utils

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kardolus/onchain-agent/agent"
	"github.com/kardolus/onchain-agent/internal"
	"github.com/kardolus/onchain-agent/wallet"
)

const Separator = "-------------------"

type Mode string

const (
	ModeChat Mode = "chat"
	ModeAuto Mode = "auto"
)

const (
	modeMenu      = "\nAvailable modes:\n1. chat    - Interactive chat mode\n2. auto    - Autonomous action mode\n"
	modePrompt    = "\nChoose a mode (enter number or name): "
	invalidChoice = "Invalid choice. Please try again."
)

func ColorToAnsi(color string) (string, string) {
	if color == "" {
		return "", ""
	}

	color = strings.ToLower(strings.TrimSpace(color))

	reset := "\033[0m"

	switch color {
	case "red":
		return "\033[31m", reset
	case "green":
		return "\033[32m", reset
	case "yellow":
		return "\033[33m", reset
	case "blue":
		return "\033[34m", reset
	case "magenta":
		return "\033[35m", reset
	default:
		return "", ""
	}
}

// ParseMode accepts a menu number or a mode name, case-insensitively.
func ParseMode(choice string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "1", string(ModeChat):
		return ModeChat, true
	case "2", string(ModeAuto):
		return ModeAuto, true
	default:
		return "", false
	}
}

// ChooseMode shows the mode menu until ask returns a valid choice or fails.
func ChooseMode(ask func(prompt string) (string, error), out io.Writer) (Mode, error) {
	for {
		fmt.Fprint(out, modeMenu)

		choice, err := ask(modePrompt)
		if err != nil {
			return "", err
		}

		if mode, ok := ParseMode(choice); ok {
			return mode, nil
		}
		fmt.Fprintln(out, invalidChoice)
	}
}

// ChunkPrinter writes agent chunks the way the terminal modes show them: the
// content, a wallet panel when an agent chunk carries wallet details, then a
// separator line.
type ChunkPrinter struct {
	out         io.Writer
	interpreter *wallet.Interpreter
	toolColor   string
	reset       string
}

func NewChunkPrinter(out io.Writer, interpreter *wallet.Interpreter, toolColor string) *ChunkPrinter {
	color, reset := ColorToAnsi(toolColor)
	return &ChunkPrinter{out: out, interpreter: interpreter, toolColor: color, reset: reset}
}

func (p *ChunkPrinter) Print(c agent.Chunk) {
	switch c.Kind {
	case agent.ChunkTools:
		fmt.Fprintln(p.out, p.toolColor+c.Content+p.reset)
	default:
		fmt.Fprintln(p.out, RenderResponse(c.Content, p.interpreter))
	}
	fmt.Fprintln(p.out, Separator)
}

// RenderResponse replaces a Wallet Details block with the formatted panel.
func RenderResponse(text string, interpreter *wallet.Interpreter) string {
	if interpreter == nil {
		return text
	}

	result := interpreter.Interpret(text)
	if result.Snapshot == nil {
		return result.DisplayText
	}

	panel := strings.TrimRight(wallet.FormatSnapshot(result.Snapshot), "\n")
	if result.DisplayText == "" {
		return panel
	}
	return result.DisplayText + "\n\n" + panel
}

// DataPath resolves a file name relative to the data home; absolute paths
// are returned unchanged.
func DataPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	dataHome, err := internal.GetDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataHome, name), nil
}

func IsExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "exit")
}

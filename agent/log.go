package agent

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kardolus/onchain-agent/internal"
)

const (
	logDir         = "agent"
	transcriptName = "onchain-agent.transcript.log"
	debugName      = "onchain-agent.debug.jsonl"
)

// FileLogger is a zap logger bound to a single file.
type FileLogger struct {
	*zap.SugaredLogger
	Path string

	file *os.File
}

func (f *FileLogger) flush() {
	_ = f.SugaredLogger.Sync()
}

func (f *FileLogger) close() {
	f.flush()
	_ = f.file.Close()
}

// Logs are the agent's files for one run. Transcript mirrors every chunk the
// user sees; Debug is a JSONL stream of LLM calls, tool calls and usage.
type Logs struct {
	Dir        string
	Transcript *FileLogger
	Debug      *FileLogger
}

// NewLogs opens the logs under <cache home>/agent.
func NewLogs() (*Logs, error) {
	cacheHome, err := internal.GetCacheHome()
	if err != nil {
		return nil, err
	}

	return NewLogsIn(filepath.Join(cacheHome, logDir))
}

// NewLogsIn opens the logs under dir. Files from a previous run are truncated.
func NewLogsIn(dir string) (*Logs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	transcript, err := openFileLogger(filepath.Join(dir, transcriptName), zapcore.InfoLevel, zapcore.NewConsoleEncoder)
	if err != nil {
		return nil, err
	}

	debug, err := openFileLogger(filepath.Join(dir, debugName), zapcore.DebugLevel, zapcore.NewJSONEncoder)
	if err != nil {
		transcript.close()
		return nil, err
	}

	return &Logs{Dir: dir, Transcript: transcript, Debug: debug}, nil
}

// Options routes an Agent's transcript and debug output into these files.
func (l *Logs) Options() []Option {
	return []Option{
		WithHumanLogger(l.Transcript.SugaredLogger, l.Transcript.flush),
		WithDebugLogger(l.Debug.SugaredLogger, l.Debug.flush),
	}
}

func (l *Logs) Close() {
	if l.Transcript != nil {
		l.Transcript.close()
	}
	if l.Debug != nil {
		l.Debug.close()
	}
}

func openFileLogger(path string, level zapcore.Level, encoder func(zapcore.EncoderConfig) zapcore.Encoder) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(encoder(cfg), zapcore.AddSync(f), level)

	return &FileLogger{
		SugaredLogger: zap.New(core).Sugar(),
		Path:          path,
		file:          f,
	}, nil
}

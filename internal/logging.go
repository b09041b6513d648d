package internal

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LevelSet map[zapcore.Level]bool

func (ls LevelSet) Enabled(l zapcore.Level) bool {
	return ls[l]
}

var logLevels = LevelSet{zapcore.InfoLevel: true}

// LevelsFor maps a configured log level to the set of levels printed on
// stdout. Warnings and errors always go to stderr.
func LevelsFor(level string) []zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel}
	case "warn", "error", "quiet":
		return nil
	default:
		return []zapcore.Level{zapcore.InfoLevel}
	}
}

func SetAllowedLogLevels(levels ...zapcore.Level) {
	newLevels := make(LevelSet)
	for _, lvl := range levels {
		newLevels[lvl] = true
	}
	logLevels = newLevels
	InitLogger()
}

func InitLogger() {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:  "msg",
		EncodeLevel: zapcore.CapitalLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	stdoutCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.WarnLevel && logLevels.Enabled(l)
	}))

	stderrCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	}))

	zap.ReplaceGlobals(zap.New(zapcore.NewTee(stdoutCore, stderrCore)))
}

// Package logging builds the zap logger used by the goidl command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable consulted when no level is given.
const EnvLevel = "GOIDL_LOG_LEVEL"

// DefaultLevel applies when neither a flag nor EnvLevel sets one.
const DefaultLevel = zapcore.WarnLevel

// Level resolves the log level from flag, then EnvLevel, then DefaultLevel.
func Level(flag string) (zapcore.Level, error) {
	s := strings.TrimSpace(flag)
	if s == "" {
		s = strings.TrimSpace(os.Getenv(EnvLevel))
	}
	if s == "" {
		return DefaultLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return DefaultLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

// New returns a logger writing to w. Terminals get the console encoding,
// anything else JSON lines.
func New(level zapcore.Level, w io.Writer) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if IsTerminal(w) {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	} else {
		enc = zapcore.NewJSONEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

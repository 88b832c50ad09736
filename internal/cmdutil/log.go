// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats accepted by NewLogger.
const (
	LogConsole = "console"
	LogJSON    = "json"
)

// NewLogger builds a zap logger writing to w. level is any zap level name
// (debug, info, warn, error); format is console or json.
func NewLogger(level, format string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case LogJSON:
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case LogConsole, "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = "" // keep console lines short and diffable
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, fmt.Errorf("invalid log format %q (want %s or %s)", format, LogConsole, LogJSON)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}

// Package logging configures the zap logger. The terminal belongs to the UI
// while it runs, so records only ever go to a file.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const fileName = "commit-wizard.log"

type Options struct {
	Enabled bool
	Local   bool
	Verbose bool
}

// DefaultLogPaths lists candidate log files in order of preference.
func DefaultLogPaths() []string {
	var paths []string
	if dir := dataDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "commit-wizard", fileName))
	}
	return append(paths, fileName)
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// GetLogFileWriter opens path for appending, creating parent directories.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "creating log directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening log file %s", path)
	}
	return zapcore.AddSync(f), f.Close, nil
}

// Init installs the global logger and returns the path being written to. When
// logging is disabled a no-op logger is installed and the path is empty.
func Init(opts Options) (string, func(), error) {
	if !opts.Enabled && !opts.Local {
		zap.ReplaceGlobals(zap.NewNop())
		return "", func() {}, nil
	}

	candidates := DefaultLogPaths()
	if opts.Local {
		candidates = []string{fileName}
	}

	var lastErr error
	for _, path := range candidates {
		writer, closeFn, err := GetLogFileWriter(path)
		if err != nil {
			lastErr = err
			continue
		}
		logger := New(writer, level(opts.Verbose))
		restore := zap.ReplaceGlobals(logger)
		return path, func() {
			_ = logger.Sync()
			restore()
			_ = closeFn()
		}, nil
	}
	return "", func() {}, errors.WithHint(errors.Wrap(lastErr, "no writable log path found"), "try --log-local to write into the current directory")
}

// New builds a JSON logger writing to w.
func New(w zapcore.WriteSyncer, lvl zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, lvl)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

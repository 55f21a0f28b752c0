package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seleniumguide/config"
)

// Logger handles application logging. Console output goes through zap;
// Init additionally tees every entry into a per-run log file.
type Logger struct {
	mu      sync.Mutex
	console zapcore.Core
	level   zap.AtomicLevel
	file    *os.File
	zl      *zap.Logger
}

// NewLogger creates a Logger that writes to stderr according to cfg.
// A nil cfg uses info level console output.
func NewLogger(cfg *config.LogConfig) (*Logger, error) {
	if cfg == nil {
		cfg = &config.LogConfig{Level: "info", Format: "console"}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	atom := zap.NewAtomicLevelAt(level)

	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}

	l := &Logger{
		console: zapcore.NewCore(enc, zapcore.Lock(os.Stderr), atom),
		level:   atom,
	}
	l.zl = zap.New(l.console)
	return l, nil
}

// NewNop returns a Logger that discards everything. Useful in tests.
func NewNop() *Logger {
	return &Logger{console: zapcore.NewNopCore(), level: zap.NewAtomicLevel(), zl: zap.NewNop()}
}

// Init initializes the logging to a file in the specified directory
func (l *Logger) Init(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log dir: %v", err)
	}

	dateStr := time.Now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("seleniumguide_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := len(matches) + 1
	filename := filepath.Join(logDir, fmt.Sprintf("seleniumguide_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	fileEnc := zap.NewProductionEncoderConfig()
	fileEnc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(f), l.level)

	l.file = f
	l.zl = zap.New(zapcore.NewTee(l.console, fileCore))
	l.zl.Info("App Started", zap.String("file", filename))
	return nil
}

// Zap exposes the underlying logger for libraries that take one.
func (l *Logger) Zap() *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zl
}

// Log writes a message to the log file
func (l *Logger) Log(message string) {
	l.Zap().Info(message)
}

// Logf writes a formatted message to the log file
func (l *Logger) Logf(format string, args ...interface{}) {
	l.Zap().Info(fmt.Sprintf(format, args...))
}

// Debug logs at debug level with structured fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.Zap().Debug(msg, fields...) }

// Info logs at info level with structured fields.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.Zap().Info(msg, fields...) }

// Warn logs at warn level with structured fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.Zap().Warn(msg, fields...) }

// Error logs at error level with structured fields.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.Zap().Error(msg, fields...) }

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level zapcore.Level) { l.level.SetLevel(level) }

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.zl.Sync()
	if l.file != nil {
		l.zl.Info("Logging disabled or App stopped.")
		_ = l.zl.Sync()
		l.file.Close()
		l.file = nil
		l.zl = zap.New(l.console)
	}
}

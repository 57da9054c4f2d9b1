package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultFileName   = "regform.log"
	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28

	// Redacted replaces the value of every sensitive field
	Redacted = "[REDACTED]"
)

// DefaultSensitiveKeys are field keys whose values never reach the log
var DefaultSensitiveKeys = []string{
	"name", "cpf", "birth", "contact", "email", "cep",
	"address", "number", "complement", "passphrase", "record",
}

type Config struct {
	Level      string
	Dir        string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a JSON logger writing to a rotated file in cfg.Dir. The
// terminal belongs to the UI, so nothing is written to stdout or stderr.
// The returned func flushes and closes the file.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if cfg.Dir == "" {
		return nil, nil, fmt.Errorf("log directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = DefaultMaxSizeMB
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = DefaultMaxBackups
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = DefaultMaxAgeDays
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, cfg.FileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		level,
	)

	logger := zap.New(NewRedactingCore(core, DefaultSensitiveKeys...), zap.AddCaller())

	cleanup := func() {
		_ = logger.Sync()
		_ = rotator.Close()
	}

	return logger, cleanup, nil
}

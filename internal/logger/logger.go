// Package logger hands out named logrus loggers that share one configuration.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls level, format and optional rotated file output.
type Config struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "json" or "text"
	Dir        string `yaml:"dir"`    // empty: stdout only
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// DefaultConfig logs text at info level to stdout.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text", MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 14}
}

var (
	mu      sync.Mutex
	cfg     = DefaultConfig()
	loggers = make(map[string]*logrus.Logger)
)

// Init replaces the shared configuration. Loggers created earlier keep
// their settings.
func Init(c Config) error {
	mu.Lock()
	defer mu.Unlock()

	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0o755); err != nil {
			return err
		}
	}
	cfg = c
	return nil
}

// Get returns the logger for name (app, http, telemetry, ...).
func Get(name string) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[name]; ok {
		return l
	}
	l := build(name, cfg)
	loggers[name] = l
	return l
}

func build(name string, c Config) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(c.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if c.Dir != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filepath.Join(c.Dir, name+".log"),
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
			Compress:   true,
		})
	}
	l.SetOutput(out)
	return l
}

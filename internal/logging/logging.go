// Package logging builds the command logger: logrus writing to stderr or to a
// size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables overriding the rotation defaults.
const (
	EnvMaxSize    = "SWIFTCODEC_LOG_MAX_SIZE"
	EnvMaxBackups = "SWIFTCODEC_LOG_MAX_BACKUPS"
	EnvMaxAge     = "SWIFTCODEC_LOG_MAX_AGE"
)

// Options configures New.
type Options struct {
	Level string
	// File, when set, receives the log instead of Stderr.
	File   string
	Stderr io.Writer
}

// New returns a logger and a closer that releases the log file, if any.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})

	if opts.File != "" {
		file := newRotatingWriter(opts.File)
		log.SetOutput(file)
		return log, file, nil
	}

	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)
	return log, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newRotatingWriter creates a lumberjack logger with configuration from environment variables
func newRotatingWriter(path string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,     // megabytes
		MaxBackups: 2,     // rotated files kept
		MaxAge:     30,    // days
		Compress:   false, // rotated files stay plain text
	}

	if v, ok := envInt(EnvMaxSize); ok && v > 0 {
		config.MaxSize = v
	}
	if v, ok := envInt(EnvMaxBackups); ok && v >= 0 {
		config.MaxBackups = v
	}
	if v, ok := envInt(EnvMaxAge); ok && v > 0 {
		config.MaxAge = v
	}
	return config
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

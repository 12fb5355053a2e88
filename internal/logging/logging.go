// Package logging configures the process-wide logrus logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

var (
	ErrParseLogLevel = errors.New("failed to parse log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// New builds a logger writing to w with the given level and format (text or json)
func New(w io.Writer, level, format string) (*log.Logger, error) {
	logger := log.New()
	logger.SetOutput(w)

	l, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - %s", ErrParseLogLevel, level, err)
	}
	logger.SetLevel(l)

	switch format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyMsg:   "message",
				log.FieldKeyLevel: "severity",
			},
		})
	case "text", "":
		logger.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return logger, nil
}

// Init configures the standard logger to write to stderr, keeping stdout free
// for results and reports
func Init(level, format string) (*log.Logger, error) {
	logger, err := New(os.Stderr, level, format)
	if err != nil {
		return nil, err
	}

	std := log.StandardLogger()
	std.SetOutput(logger.Out)
	std.SetLevel(logger.GetLevel())
	std.SetFormatter(logger.Formatter)

	return std, nil
}

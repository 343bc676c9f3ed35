// Package logger holds the process-wide structured logger. Every function is
// safe to call before Init; output is then discarded.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dayweave/internal/constants"
)

var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Format is "text" (default), "logfmt" or "json".
	Format string
}

func formatter(name string) (log.Formatter, error) {
	switch name {
	case "", "text":
		return log.TextFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	}
	return 0, fmt.Errorf("unknown log format %q", name)
}

// Init writes logs to a rotating file under ConfigDir/logs. Debug lowers the
// level and mirrors output to stderr.
func Init(cfg Config) error {
	f, err := formatter(cfg.Format)
	if err != nil {
		return err
	}

	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		Formatter:       f,
	})
	return nil
}

// Entry is a logger bound to a set of key/value pairs, e.g. the user and
// date of a placement run. The zero Entry discards.
type Entry struct {
	l *log.Logger
}

func With(keyvals ...interface{}) Entry {
	if Logger == nil {
		return Entry{}
	}
	return Entry{l: Logger.With(keyvals...)}
}

func (e Entry) Debug(msg string, keyvals ...interface{}) {
	if e.l != nil {
		e.l.Debug(msg, keyvals...)
	}
}

func (e Entry) Info(msg string, keyvals ...interface{}) {
	if e.l != nil {
		e.l.Info(msg, keyvals...)
	}
}

func (e Entry) Warn(msg string, keyvals ...interface{}) {
	if e.l != nil {
		e.l.Warn(msg, keyvals...)
	}
}

func (e Entry) Error(msg string, keyvals ...interface{}) {
	if e.l != nil {
		e.l.Error(msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...interface{}) { With().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...interface{})  { With().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { With().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { With().Error(msg, keyvals...) }

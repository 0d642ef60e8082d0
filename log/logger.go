package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Verbosity levels accepted by SetLevel.
type Level int

const (
	Debug Level = iota
	Info
	Notice
)

var backendLevels = map[Level]logging.Level{
	Debug:  logging.DEBUG,
	Info:   logging.INFO,
	Notice: logging.NOTICE,
}

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	activeLevel    = Notice
)

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Redirect log output to sink, keeping the active verbosity.
func SetSink(sink io.Writer) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveledBackend = logging.AddModuleLevel(backend)
	logging.SetBackend(leveledBackend)
	SetLevel(activeLevel)
}

// Set logger verbosity. Unknown levels select Notice.
func SetLevel(level Level) {
	backendLevel, known := backendLevels[level]
	if !known {
		level, backendLevel = Notice, logging.NOTICE
	}
	activeLevel = level
	leveledBackend.SetLevel(backendLevel, "")
}

// Get the active verbosity.
func GetLevel() Level {
	return activeLevel
}

func init() {
	SetSink(os.Stdout)
}

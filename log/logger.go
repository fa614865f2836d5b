// Package log wraps go-logging with the named, leveled loggers fragcanvas
// uses. Each package logs under its own module name ("canvas", "gl",
// "fetch", "glfw", "gtk") and every module's verbosity can be set on its own.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[string]Level{
	"debug":   Debug,
	"info":    Info,
	"notice":  Notice,
	"warning": Warning,
	"warn":    Warning,
	"error":   Error,
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) backend() logging.Level {
	switch l {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	}
	return logging.NOTICE
}

// ParseLevel accepts a level name in any case.
func ParseLevel(name string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Notice, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level:.4s}]%{color:reset} %{message}`,
)

// The leveled backend is rebuilt whenever the sink changes or overrides are
// dropped, so the levels live here and are replayed onto it.
var (
	mu           sync.Mutex
	formatted    logging.Backend
	backend      logging.LeveledBackend
	defaultLevel = Notice
	moduleLevels = make(map[string]Level)
)

// rebuild must be called with mu held.
func rebuild() {
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(defaultLevel.backend(), "")
	for module, level := range moduleLevels {
		backend.SetLevel(level.backend(), module)
	}
	logging.SetBackend(backend)
}

type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink sends all output to sink, keeping every configured level.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted = logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	rebuild()
}

// SetLevel sets the level of every module without an override.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	defaultLevel = level
	backend.SetLevel(level.backend(), "")
}

// SetModuleLevel overrides the level of a single module.
func SetModuleLevel(module string, level Level) {
	mu.Lock()
	defer mu.Unlock()

	moduleLevels[module] = level
	backend.SetLevel(level.backend(), module)
}

// ResetModuleLevels drops every per-module override.
func ResetModuleLevels() {
	mu.Lock()
	defer mu.Unlock()

	moduleLevels = make(map[string]Level)
	rebuild()
}

// Enabled reports whether module currently logs at level.
func Enabled(module string, level Level) bool {
	mu.Lock()
	defer mu.Unlock()

	return backend.IsEnabledFor(level.backend(), module)
}

// Configure applies a comma separated list of module=level pairs, such as
// "canvas=debug,fetch=info". A bare level sets the default.
func Configure(levels string) error {
	for _, part := range strings.Split(levels, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		module, name, scoped := strings.Cut(part, "=")
		if !scoped {
			name = module
		}
		level, err := ParseLevel(name)
		if err != nil {
			return err
		}

		if scoped {
			module = strings.TrimSpace(module)
			if module == "" {
				return fmt.Errorf("missing module in %q", part)
			}
			SetModuleLevel(module, level)
		} else {
			SetLevel(level)
		}
	}
	return nil
}

func init() {
	SetSink(os.Stderr)
}

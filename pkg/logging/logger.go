package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

// Level controls how chatty a LevelLogger is. A logger prints every
// message at or below its own level.
type Level int

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel returns the level with the given name
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info", "":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}
	return LevelOff, fmt.Errorf("logging: unknown level %q", s)
}

type LevelLogger struct {
	*log.Logger
	level Level
}

func NewLevelLogger(out io.Writer, level Level) *LevelLogger {
	return &LevelLogger{
		Logger: log.New(out, "", log.LstdFlags|log.Lmsgprefix),
		level:  level,
	}
}

// NewDefaultLogger logs at info level to stderr
func NewDefaultLogger() *LevelLogger {
	return NewLevelLogger(os.Stderr, LevelInfo)
}

// Discard returns a logger that drops everything
func Discard() *LevelLogger {
	return NewLevelLogger(io.Discard, LevelOff)
}

func (l *LevelLogger) Level() Level {
	return l.level
}

func (l *LevelLogger) output(level Level, tag, s string, a ...interface{}) {
	if l == nil || l.level < level {
		return
	}
	ls := fmt.Sprintf("| %5s | %s", tag, s)
	if len(a) == 0 {
		l.Println(ls)
		return
	}
	l.Printf(ls, a...)
}

func (l *LevelLogger) Debug(s string, a ...interface{}) {
	l.output(LevelDebug, "DEBUG", s, a...)
}

func (l *LevelLogger) Info(s string, a ...interface{}) {
	l.output(LevelInfo, "INFO", s, a...)
}

func (l *LevelLogger) Warn(s string, a ...interface{}) {
	l.output(LevelWarn, "WARN", s, a...)
}

func (l *LevelLogger) Error(s string, a ...interface{}) {
	l.output(LevelError, "ERROR", s, a...)
}

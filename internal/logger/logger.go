// Package logger is the leveled logger shared by the billing terminal.
// Output is off, normal (info and up) or verbose (debug too); a Logger may
// be used from the ticker and the REPL at the same time.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level controls the verbosity of the logger.
type Level int32

const (
	LevelOff Level = iota
	LevelNormal
	LevelVerbose
)

var levelNames = map[Level]string{
	LevelOff:     "off",
	LevelNormal:  "normal",
	LevelVerbose: "verbose",
}

// String returns the name accepted by ParseLevel.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLevel maps a STAYTAB_LOG_LEVEL value to a Level. Besides the level
// names it accepts "quiet", "none", "info" and "debug"; empty means normal.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "info":
		return LevelNormal, nil
	case "off", "quiet", "none":
		return LevelOff, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	}
	return LevelNormal, fmt.Errorf("unknown log level %q", s)
}

// severity is one kind of line: the tag it carries and the level that
// shows it.
type severity struct {
	tag  string
	from Level
}

var (
	sevDebug = severity{"[DBG] ", LevelVerbose}
	sevInfo  = severity{"[INF] ", LevelNormal}
	sevWarn  = severity{"[WRN] ", LevelNormal}
	sevError = severity{"[ERR] ", LevelNormal}
)

// Logger writes tagged, timestamped lines to one sink.
type Logger struct {
	level atomic.Int32
	sink  *log.Logger
}

// New returns a logger at level writing to out, or to stderr when out is
// nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	l := &Logger{sink: log.New(out, "", log.Ltime)}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the level; later calls see it at once.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *Logger) GetLevel() Level {
	return Level(l.level.Load())
}

func (l *Logger) emit(s severity, format string, args []any) {
	if l.GetLevel() < s.from {
		return
	}
	// log.Logger serializes writes to the sink.
	_ = l.sink.Output(3, s.tag+fmt.Sprintf(format, args...))
}

// Debug is only shown in verbose mode.
func (l *Logger) Debug(format string, args ...any) { l.emit(sevDebug, format, args) }

func (l *Logger) Info(format string, args ...any) { l.emit(sevInfo, format, args) }

func (l *Logger) Warn(format string, args ...any) { l.emit(sevWarn, format, args) }

func (l *Logger) Error(format string, args ...any) { l.emit(sevError, format, args) }

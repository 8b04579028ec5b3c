package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/crytic/clif/logging/colors"
	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is configured by the fuzz command once the project
// configuration is known. Each package should create its own sub-logger from it.
var GlobalLogger *Logger

// Logger describes a custom logging object that can log events to any number of writers, in structured (JSON) or
// unstructured (console) format, with or without colors.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// context holds the key-value pairs every event of this logger is tagged with
	context []string

	// structuredLogger, unstructuredLogger and unstructuredColorLogger are rebuilt whenever a writer is added or removed
	structuredLogger        zerolog.Logger
	unstructuredLogger      zerolog.Logger
	unstructuredColorLogger zerolog.Logger

	// structuredWriters describes the writers receiving JSON output
	structuredWriters []io.Writer
	// unstructuredWriters describes the writers receiving plain console output
	unstructuredWriters []io.Writer
	// unstructuredColorWriters describes the writers receiving colorized console output
	unstructuredColorWriters []io.Writer
}

// LogFormat describes what format to log in
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger creates a new Logger with a specific log level and no writers.
func NewLogger(level zerolog.Level) *Logger {
	l := &Logger{
		level:                    level,
		structuredWriters:        make([]io.Writer, 0),
		unstructuredWriters:      make([]io.Writer, 0),
		unstructuredColorWriters: make([]io.Writer, 0),
	}
	l.rebuild()
	return l
}

// NewSubLogger creates a new Logger that shares the writers of its parent and tags every event with the given
// key-value pair. Writers added to the sub-logger afterwards do not propagate to the parent.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	sub := &Logger{
		level:                    l.level,
		context:                  append(append([]string{}, l.context...), key, value),
		structuredWriters:        append([]io.Writer{}, l.structuredWriters...),
		unstructuredWriters:      append([]io.Writer{}, l.unstructuredWriters...),
		unstructuredColorWriters: append([]io.Writer{}, l.unstructuredColorWriters...),
	}
	sub.rebuild()
	return sub
}

// AddWriter adds a writer to the list of channels where log output will be sent. Adding a writer that is already
// registered for the same format is a no-op.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)
	for _, w := range *writers {
		if w == writer {
			return
		}
	}
	*writers = append(*writers, writer)
	l.rebuild()
}

// RemoveWriter removes a writer from the list of writers that the logger manages. If the writer does not exist, this
// function is a no-op.
func (l *Logger) RemoveWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)
	for i, w := range *writers {
		if w == writer {
			*writers = append((*writers)[:i], (*writers)[i+1:]...)
			l.rebuild()
			return
		}
	}
}

// Level returns the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel updates the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.rebuild()
}

func (l *Logger) writersFor(format LogFormat, colored bool) *[]io.Writer {
	if format == STRUCTURED {
		return &l.structuredWriters
	}
	if colored {
		return &l.unstructuredColorWriters
	}
	return &l.unstructuredWriters
}

// rebuild recreates the underlying zerolog loggers from the current writer lists and level.
func (l *Logger) rebuild() {
	l.structuredLogger = l.newZerolog(l.structuredWriters, func(w io.Writer) io.Writer { return w }, true)
	l.unstructuredLogger = l.newZerolog(l.unstructuredWriters, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, l.level)
	}, false)
	l.unstructuredColorLogger = l.newZerolog(l.unstructuredColorWriters, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: !colors.Enabled()}, l.level)
	}, false)
}

func (l *Logger) newZerolog(writers []io.Writer, wrap func(io.Writer) io.Writer, timestamp bool) zerolog.Logger {
	// A logger without writers is disabled so that events are never built for nothing
	if len(writers) == 0 {
		return zerolog.Nop()
	}

	wrapped := make([]io.Writer, len(writers))
	for i, w := range writers {
		wrapped[i] = wrap(w)
	}
	ctx := zerolog.New(zerolog.MultiLevelWriter(wrapped...)).Level(l.level).With()
	if timestamp {
		ctx = ctx.Timestamp()
	}
	for i := 0; i+1 < len(l.context); i += 2 {
		ctx = ctx.Str(l.context[i], l.context[i+1])
	}
	return ctx.Logger()
}

// Trace is a wrapper function that will log a trace event
func (l *Logger) Trace(args ...any) {
	l.log(zerolog.TraceLevel, args...)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.log(zerolog.DebugLevel, args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.log(zerolog.InfoLevel, args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.log(zerolog.WarnLevel, args...)
}

// Error is a wrapper function that will log an error event
func (l *Logger) Error(args ...any) {
	l.log(zerolog.ErrorLevel, args...)
}

// Panic is a wrapper function that will log a panic event and then panic
func (l *Logger) Panic(args ...any) {
	l.log(zerolog.PanicLevel, args...)
	panic(fmt.Sprint(args...))
}

// log builds the console and structured messages for the provided args and sends them to every writer.
func (l *Logger) log(level zerolog.Level, args ...any) {
	coloredMsg, plainMsg, err, info := buildMsgs(args...)

	// Panic events are sent at error level to zerolog so that the Logger controls when the panic happens
	zlevel := level
	if level == zerolog.PanicLevel {
		zlevel = zerolog.ErrorLevel
	}

	debug := l.level <= zerolog.DebugLevel || level == zerolog.PanicLevel
	for _, target := range []struct {
		logger zerolog.Logger
		msg    string
	}{
		{l.structuredLogger, plainMsg},
		{l.unstructuredLogger, plainMsg},
		{l.unstructuredColorLogger, coloredMsg},
	} {
		event := target.logger.WithLevel(zlevel)
		if event == nil {
			continue
		}
		chainError(event, err, debug)
		if info != nil {
			event.Any("info", info)
		}
		event.Msg(target.msg)
	}
}

// buildMsgs takes a variadic list of arguments of any type and returns a colorized message for console output and a
// plain message for structured output, along with an optional error and StructuredLogInfo. A colors.ColorFunc argument
// switches the color context for the arguments that follow it.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	coloredOutput := make([]string, 0, len(args))
	plainOutput := make([]string, 0, len(args))
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			colorCtx = t
		case StructuredLogInfo:
			// Only one structured log info can be provided for each log message
			info = t
		case error:
			// Only one error can be provided for each log message
			err = t
		default:
			coloredOutput = append(coloredOutput, colorCtx(t))
			plainOutput = append(plainOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(coloredOutput, ""), strings.Join(plainOutput, ""), err, info
}

// chainError attaches err to the event. If debug is true, a stack trace is added as well.
func chainError(event *zerolog.Event, err error, debug bool) {
	if err == nil {
		return
	}
	event.Err(err)
	if debug {
		event.Stack()
	}
}

// setupDefaultFormatting updates a console writer's formatting to the clif standard.
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Get rid of the timestamp for console output
	writer.FormatTimestamp = func(i any) string {
		return ""
	}

	writer.FormatLevel = func(i any) string {
		s, _ := i.(string)
		parsed, err := zerolog.ParseLevel(s)
		if err != nil {
			return s
		}

		colorize := func(f colors.ColorFunc, v string) string {
			if writer.NoColor {
				return v
			}
			return f(v)
		}

		switch parsed {
		case zerolog.TraceLevel:
			return colorize(colors.CyanBold, zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return colorize(colors.BlueBold, zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return colorize(colors.GreenBold, colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return colorize(colors.YellowBold, zerolog.LevelWarnValue)
		case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
			return colorize(colors.RedBold, s)
		default:
			return s
		}
	}

	// Above debug level the module tag is noise on the console
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module"}
	}

	return writer
}

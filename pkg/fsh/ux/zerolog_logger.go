package ux

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ZerologLogger implements Logger using zerolog
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger logs through the global zerolog logger, which the CLI
// configures at startup.
func NewZerologLogger() *ZerologLogger {
	return NewZerologLoggerWithLogger(log.Logger)
}

// NewZerologLoggerWithLogger wraps an already configured zerolog logger.
func NewZerologLoggerWithLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// NewZerologLoggerWithWriter writes JSON lines at level and above to w.
func NewZerologLoggerWithWriter(w io.Writer, level zerolog.Level) *ZerologLogger {
	return NewZerologLoggerWithLogger(zerolog.New(w).Level(level).With().Timestamp().Logger())
}

func (l *ZerologLogger) Info(msg string, fields ...LogField) {
	send(l.logger.Info(), msg, fields)
}

func (l *ZerologLogger) Warn(msg string, fields ...LogField) {
	send(l.logger.Warn(), msg, fields)
}

func (l *ZerologLogger) Error(msg string, fields ...LogField) {
	send(l.logger.Error(), msg, fields)
}

func (l *ZerologLogger) Debug(msg string, fields ...LogField) {
	send(l.logger.Debug(), msg, fields)
}

func send(event *zerolog.Event, msg string, fields []LogField) {
	for _, field := range fields {
		if err, ok := field.Value.(error); ok {
			event = event.AnErr(field.Key, err)
			continue
		}
		event = event.Interface(field.Key, field.Value)
	}
	event.Msg(msg)
}

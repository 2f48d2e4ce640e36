package log

import (
	"context"
	"io"
	"sort"

	saltLog "github.com/goto/salt/log"
	"github.com/sirupsen/logrus"
)

type Logger interface {

	// Debug level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Debug(ctx context.Context, msg string, args ...interface{})

	// Info level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Info(ctx context.Context, msg string, args ...interface{})

	// Warn level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Warn(ctx context.Context, msg string, args ...interface{})

	// Error level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Error(ctx context.Context, msg string, args ...interface{})

	// Level returns priority level for which this logger will filter logs
	Level() string

	// Writer used to print logs
	Writer() io.Writer
}

type metadataContextKey struct{}

type CtxLogger struct {
	log saltLog.Logger
}

// NewCtxLoggerWithSaltLogger wraps a salt logger so that metadata stored in the context is appended to every entry
func NewCtxLoggerWithSaltLogger(log saltLog.Logger) *CtxLogger {
	return &CtxLogger{log: log}
}

// NewCtxLogger returns a logrus backed logger. format "json" switches to the JSON formatter.
func NewCtxLogger(logLevel, format string) *CtxLogger {
	opts := []saltLog.Option{saltLog.LogrusWithLevel(logLevel)}
	if format == "json" {
		opts = append(opts, saltLog.LogrusWithFormatter(&logrus.JSONFormatter{}))
	}
	return NewCtxLoggerWithSaltLogger(saltLog.NewLogrus(opts...))
}

func (l *CtxLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log.Debug(msg, addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log.Info(msg, addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log.Warn(msg, addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log.Error(msg, addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Level() string {
	return l.log.Level()
}

func (l *CtxLogger) Writer() io.Writer {
	return l.log.Writer()
}

// addCtxToArgs appends the context metadata to args as key/value pairs, sorted by key
func addCtxToArgs(ctx context.Context, args []interface{}) []interface{} {
	if ctx == nil {
		return args
	}

	md, ok := ctx.Value(metadataContextKey{}).(map[string]interface{})
	if !ok || len(md) == 0 {
		return args
	}

	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, md[k])
	}

	return args
}

// WithMetadata returns a context carrying md on top of any metadata already present.
// The parent's metadata map is never mutated.
func WithMetadata(ctx context.Context, md map[string]interface{}) context.Context {
	merged := map[string]interface{}{}
	if existing, ok := ctx.Value(metadataContextKey{}).(map[string]interface{}); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range md {
		merged[k] = v
	}

	return context.WithValue(ctx, metadataContextKey{}, merged)
}

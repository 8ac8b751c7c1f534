package admin

import "context"

// Logger is the structured logging sink operations report to. Fields are
// key/value pairs. Implementations must be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(context.Context, string, ...interface{}) {}
func (noopLogger) Info(context.Context, string, ...interface{})  {}
func (noopLogger) Warn(context.Context, string, ...interface{})  {}
func (noopLogger) Error(context.Context, string, ...interface{}) {}

// logInfo never lets the sink influence the operation's outcome.
func logInfo(ctx context.Context, log Logger, msg string, fields ...interface{}) {
	defer func() { _ = recover() }()
	log.Info(ctx, msg, fields...)
}

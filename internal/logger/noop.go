package logger

import "context"

// NoOp discards all log entries.
type NoOp struct{}

// Debug implements admin.Logger.
func (NoOp) Debug(context.Context, string, ...interface{}) {}

// Info implements admin.Logger.
func (NoOp) Info(context.Context, string, ...interface{}) {}

// Warn implements admin.Logger.
func (NoOp) Warn(context.Context, string, ...interface{}) {}

// Error implements admin.Logger.
func (NoOp) Error(context.Context, string, ...interface{}) {}

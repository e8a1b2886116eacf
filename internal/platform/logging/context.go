package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxScopeKey struct{}

// requestScope is the per-request logging state installed by RequestLogger.
type requestScope struct {
	logger  *zap.Logger
	traceID string
}

func scopeFrom(ctx context.Context) requestScope {
	if ctx == nil {
		return requestScope{}
	}
	s, _ := ctx.Value(ctxScopeKey{}).(requestScope)
	return s
}

func withScope(ctx context.Context, s requestScope) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxScopeKey{}, s)
}

// LoggerFromContext returns the request-scoped logger, or the global logger
// outside a request.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if l := scopeFrom(ctx).logger; l != nil {
		return l
	}
	return Logger()
}

// SugarFromContext returns a sugared logger derived from the request context.
func SugarFromContext(ctx context.Context) *zap.SugaredLogger {
	return LoggerFromContext(ctx).Sugar()
}

// TraceIDFromContext returns the correlation id (Cloud Trace resource or
// request id), or "" when none was recorded.
func TraceIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).traceID
}

// WithUserID tags every later log line of the request with the user record
// being operated on.
func WithUserID(ctx context.Context, id int64) context.Context {
	s := scopeFrom(ctx)
	s.logger = LoggerFromContext(ctx).With(zap.Int64("userId", id))
	return withScope(ctx, s)
}

func LogInfo(ctx context.Context, msg string, fields ...zap.Field) {
	logAt(ctx, zapcore.InfoLevel, msg, nil, fields)
}

func LogWarn(ctx context.Context, msg string, fields ...zap.Field) {
	logAt(ctx, zapcore.WarnLevel, msg, nil, fields)
}

// LogError logs msg at error level, attaching err when non-nil.
func LogError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	logAt(ctx, zapcore.ErrorLevel, msg, err, fields)
}

// LogFatal logs msg and exits the process.
func LogFatal(ctx context.Context, msg string, err error, fields ...zap.Field) {
	logAt(ctx, zapcore.FatalLevel, msg, err, fields)
}

func logAt(ctx context.Context, lvl zapcore.Level, msg string, err error, fields []zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	LoggerFromContext(ctx).Log(lvl, msg, fields...)
}

func contextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	s := scopeFrom(ctx)
	s.logger = logger
	return withScope(ctx, s)
}

func contextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	s := scopeFrom(ctx)
	s.traceID = traceID
	return withScope(ctx, s)
}

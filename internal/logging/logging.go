package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/lmittmann/tint"
)

// New builds the process logger. "text" renders colourised output through
// tint for local runs, anything else emits JSON lines for CloudWatch.
func New(w io.Writer, format, level string) *slog.Logger {
	lvl := ParseLevel(level)
	if format == "text" {
		return slog.New(
			tint.NewHandler(w, &tint.Options{
				Level: lvl,
				ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
					if err, ok := a.Value.Any().(error); ok {
						aErr := tint.Err(err)
						aErr.Key = a.Key
						return aErr
					}
					return a
				},
			}),
		)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithInvocation tags the logger with the Lambda request id carried by ctx, if any.
func WithInvocation(ctx context.Context, logger *slog.Logger) *slog.Logger {
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok || lc.AwsRequestID == "" {
		return logger
	}
	return logger.With("requestID", lc.AwsRequestID)
}

package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/clippay/settlement-engine/pkg/logger/stacktrace"
	"github.com/cockroachdb/errors/errbase"
)

// errorAttrReplacer renders error attributes as their message under
// [ErrorKey]. Verbose output and stack traces are added separately by
// [middlewareErrorStackTrace].
func errorAttrReplacer(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slogx.ErrorKey || attr.Key == "err" {
		if err, ok := attr.Value.Any().(error); ok && err != nil {
			return slog.String(ErrorKey, err.Error())
		}
	}
	return attr
}

// middlewareErrorStackTrace expands error attributes on a record with the
// verbose error rendering and, when the error carries one, the originating
// stack trace.
func middlewareErrorStackTrace() middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			var expanded []slog.Attr
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key == slogx.ErrorKey || attr.Key == "err" {
					if err, ok := attr.Value.Any().(error); ok && err != nil {
						expanded = append(expanded, slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
						if x, ok := err.(errbase.StackTraceProvider); ok {
							trace := stacktrace.StackTrace(x.StackTrace())
							expanded = append(expanded, slog.Any(ErrorStackTraceKey, trace.TraceFramesStrings()))
						}
					}
				}
				return true
			})
			rec.AddAttrs(expanded...)

			return next(ctx, rec)
		}
	}
}

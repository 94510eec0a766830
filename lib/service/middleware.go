// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pastehouse/pastehouse/lib/clock"
)

// RequestIDHeader carries the per-request correlation identifier on
// both the request (when the caller supplies one) and the response.
const RequestIDHeader = "X-Request-Id"

type requestLoggerKey struct{}

// RequestLogger wraps next with access logging. Every request gets a
// correlation identifier: a well-formed UUID supplied by the caller in
// X-Request-Id is kept, anything else is replaced with a fresh one.
// The identifier is echoed on the response and attached to a child
// logger that handlers retrieve with [Logger].
//
// One record is logged per request after the handler returns, with
// method, path, status, bytes written and duration measured on clk.
// 5xx responses log at error level, everything else at info.
func RequestLogger(next http.Handler, logger *slog.Logger, clk clock.Clock) http.Handler {
	if next == nil {
		panic("service.RequestLogger: next handler is required")
	}
	if logger == nil {
		panic("service.RequestLogger: logger is required")
	}
	if clk == nil {
		panic("service.RequestLogger: clock is required")
	}

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := clk.Now()

		requestID := request.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		writer.Header().Set(RequestIDHeader, requestID)

		requestLogger := logger.With("request_id", requestID)
		ctx := context.WithValue(request.Context(), requestLoggerKey{}, requestLogger)

		recorder := &statusRecorder{ResponseWriter: writer}
		next.ServeHTTP(recorder, request.WithContext(ctx))

		level := slog.LevelInfo
		if recorder.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		requestLogger.LogAttrs(ctx, level, "request",
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.Int("status", recorder.Status()),
			slog.Int64("bytes", recorder.bytes),
			slog.Duration("duration", clock.Since(clk, start)),
		)
	})
}

// Logger returns the request-scoped logger installed by
// [RequestLogger], or slog.Default() outside a logged request.
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(requestLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// statusRecorder captures the status code and body size written
// through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(data []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	written, err := r.ResponseWriter.Write(data)
	r.bytes += int64(written)
	return written, err
}

// Status returns the response status, defaulting to 200 when the
// handler wrote nothing at all.
func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

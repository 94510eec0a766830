// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pastehouse/pastehouse/lib/clock"
	"github.com/pastehouse/pastehouse/lib/highlight"
	"github.com/pastehouse/pastehouse/lib/pasteresponse"
	"github.com/pastehouse/pastehouse/lib/pastestore"
	"github.com/pastehouse/pastehouse/lib/service"
)

const (
	// defaultContentType is served when the extension hint is absent
	// or not in the MIME table.
	defaultContentType = "text/plain; charset=utf-8"

	documentContentType = "text/html; charset=utf-8"
)

// Outcome labels beyond pastestore's found / not_found / io_failure.
const (
	outcomeCancelled   = "cancelled"
	outcomeRenderError = "render_error"
)

// HandlerConfig configures the retrieval handler.
type HandlerConfig struct {
	// Resolver opens artifacts in the upload directory. Required.
	Resolver *pastestore.Resolver

	// Catalog supplies grammars and the theme for /pretty. Required.
	Catalog *highlight.Catalog

	// Metrics receives per-request counters. Required.
	Metrics *Metrics

	// Clock times highlighting passes. Required.
	Clock clock.Clock

	// ExposeMetrics serves Metrics on /-/metrics.
	ExposeMetrics bool
}

type retrievalHandler struct {
	resolver *pastestore.Resolver
	catalog  *highlight.Catalog
	metrics  *Metrics
	clock    clock.Clock
	tracer   trace.Tracer
}

// NewHandler returns the router for the retrieval endpoints:
//
//	GET /{paste}         raw delivery; {paste} is "id" or "id.ext"
//	GET /pretty/{paste}  highlighted HTML document
//	GET /-/healthz       liveness
//	GET /-/metrics       Prometheus exposition, if enabled
//
// HEAD is served for every GET route.
func NewHandler(config HandlerConfig) http.Handler {
	if config.Resolver == nil {
		panic("NewHandler: Resolver is required")
	}
	if config.Catalog == nil {
		panic("NewHandler: Catalog is required")
	}
	if config.Metrics == nil {
		panic("NewHandler: Metrics is required")
	}
	if config.Clock == nil {
		panic("NewHandler: Clock is required")
	}

	handler := &retrievalHandler{
		resolver: config.Resolver,
		catalog:  config.Catalog,
		metrics:  config.Metrics,
		clock:    config.Clock,
		tracer:   otel.Tracer("github.com/pastehouse/pastehouse/cmd/pastehouse-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{paste}", handler.serveRaw)
	mux.HandleFunc("GET /pretty/{paste}", handler.servePretty)
	mux.HandleFunc("GET /-/healthz", serveHealth)
	if config.ExposeMetrics {
		mux.Handle("GET /-/metrics", config.Metrics.Handler())
	}
	return mux
}

// splitPaste splits a path segment into identifier and extension hint
// at the first dot. The hint is lowercased; a trailing dot yields an
// empty hint.
func splitPaste(paste string) (id, extension string) {
	id, extension, _ = strings.Cut(paste, ".")
	return id, strings.ToLower(extension)
}

func (h *retrievalHandler) serveRaw(writer http.ResponseWriter, request *http.Request) {
	id, extension := splitPaste(request.PathValue("paste"))

	outcome, ok := h.resolve(writer, request, routeRaw, id)
	if !ok {
		return
	}

	response := pasteresponse.Build(id, outcome, extension)
	defer response.Close()

	switch response.Kind {
	case pasteresponse.KindNotFound:
		h.notFound(writer, request, routeRaw, id)
	case pasteresponse.KindServerError:
		h.serverError(writer, request, routeRaw, pastestore.OutcomeIOFailure.String(), id, errors.New(response.Message))
	default:
		contentType := defaultContentType
		if response.Kind == pasteresponse.KindMIMETyped {
			contentType = response.MIME
		}
		h.serveContent(writer, request, routeRaw, servedContent{
			contentType: contentType,
			etag:        pasteresponse.ETag(id, response.ModifiedAt, response.Size),
			modifiedAt:  response.ModifiedAt,
			content:     response.Content,
		})
	}
}

func (h *retrievalHandler) servePretty(writer http.ResponseWriter, request *http.Request) {
	paste := request.PathValue("paste")
	id, extension := splitPaste(paste)

	outcome, ok := h.resolve(writer, request, routePretty, id)
	if !ok {
		return
	}

	switch outcome.Kind {
	case pastestore.OutcomeNotFound:
		h.notFound(writer, request, routePretty, id)
		return
	case pastestore.OutcomeIOFailure:
		h.serverError(writer, request, routePretty, outcome.Kind.String(), id, errors.New(outcome.Detail))
		return
	}

	artifact := outcome.Artifact
	defer artifact.Close()

	page, err := h.render(request, paste, extension, artifact)
	if err != nil {
		h.serverError(writer, request, routePretty, outcomeRenderError, id, err)
		return
	}

	h.serveContent(writer, request, routePretty, servedContent{
		contentType: documentContentType,
		etag:        prettyETag(h.catalog, id, extension, artifact),
		modifiedAt:  artifact.ModifiedAt,
		content:     strings.NewReader(page),
	})
}

// render highlights an artifact into a standalone page inside a
// tracing span.
func (h *retrievalHandler) render(request *http.Request, title, extension string, artifact *pastestore.Artifact) (string, error) {
	grammar := h.catalog.Find(extension)

	_, span := h.tracer.Start(request.Context(), "highlight.render", trace.WithAttributes(
		attribute.String("pastehouse.grammar", grammar.Name()),
		attribute.Int64("pastehouse.artifact.size", artifact.Size),
	))
	defer span.End()

	start := h.clock.Now()
	page, err := highlight.RenderArtifact(artifact.Content, extension, h.catalog)
	if err == nil {
		page, err = highlight.Document(title, page, h.catalog)
	}
	h.metrics.RecordRender(grammar.Name(), clock.Since(h.clock, start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return "", err
	}
	return page, nil
}

// resolve runs the resolver and handles cancellation. ok is false when
// the request was already answered.
func (h *retrievalHandler) resolve(writer http.ResponseWriter, request *http.Request, route, id string) (pastestore.Outcome, bool) {
	outcome, err := h.resolver.Resolve(request.Context(), id)
	if err != nil {
		service.Logger(request.Context()).Debug("retrieval abandoned",
			"route", route,
			"id", id,
			"error", err,
		)
		h.metrics.RecordRequest(route, outcomeCancelled)
		http.Error(writer, "Service Unavailable", http.StatusServiceUnavailable)
		return pastestore.Outcome{}, false
	}
	return outcome, true
}

func (h *retrievalHandler) notFound(writer http.ResponseWriter, request *http.Request, route, id string) {
	service.Logger(request.Context()).Debug("artifact not found", "route", route, "id", id)
	h.metrics.RecordRequest(route, pastestore.OutcomeNotFound.String())
	http.Error(writer, "Not Found", http.StatusNotFound)
}

// serverError logs the detail and answers with a generic body; storage
// paths and errno text never reach the client.
func (h *retrievalHandler) serverError(writer http.ResponseWriter, request *http.Request, route, outcome, id string, err error) {
	service.Logger(request.Context()).Error("artifact retrieval failed",
		"route", route,
		"id", id,
		"outcome", outcome,
		"error", err,
	)
	h.metrics.RecordRequest(route, outcome)
	http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
}

type servedContent struct {
	contentType string
	etag        string
	modifiedAt  time.Time
	content     io.ReadSeeker
}

// serveContent writes a found artifact through http.ServeContent, which
// supplies Last-Modified, conditional requests and byte ranges.
func (h *retrievalHandler) serveContent(writer http.ResponseWriter, request *http.Request, route string, served servedContent) {
	header := writer.Header()
	header.Set("Content-Type", served.contentType)
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("ETag", served.etag)

	counter := &countingWriter{ResponseWriter: writer}
	http.ServeContent(counter, request, "", served.modifiedAt, served.content)

	h.metrics.RecordBytes(route, counter.written)
	h.metrics.RecordRequest(route, pastestore.OutcomeFound.String())
}

func serveHealth(writer http.ResponseWriter, _ *http.Request) {
	writer.Header().Set("Content-Type", defaultContentType)
	io.WriteString(writer, "ok\n")
}

type countingWriter struct {
	http.ResponseWriter
	written int64
}

func (w *countingWriter) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.written += int64(n)
	return n, err
}

func (w *countingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// prettyETag tags a rendered page. A different grammar set or theme
// yields a different tag for the same artifact.
func prettyETag(catalog *highlight.Catalog, id, extension string, artifact *pastestore.Artifact) string {
	key := "pretty/" + catalog.Fingerprint() + "/" + id + "." + extension
	return pasteresponse.ETag(key, artifact.ModifiedAt, artifact.Size)
}

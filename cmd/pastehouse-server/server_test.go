// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/pastehouse/pastehouse/lib/clock"
	"github.com/pastehouse/pastehouse/lib/highlight"
	"github.com/pastehouse/pastehouse/lib/pastestore"
	"github.com/pastehouse/pastehouse/lib/service"
	"github.com/pastehouse/pastehouse/lib/testutil"
)

// TestServeOverTCP runs the full handler stack behind a real listener
// and checks the abc123 scenario end to end.
func TestServeOverTCP(t *testing.T) {
	catalog, err := highlight.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	uploadDir := testutil.UploadDir(t)
	testutil.WriteArtifact(t, uploadDir, "abc123", []byte("fn main() {}"), testutil.FixedModTime)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewHandler(HandlerConfig{
		Resolver: pastestore.NewResolver(uploadDir),
		Catalog:  catalog,
		Metrics:  NewMetrics(),
		Clock:    clock.Real(),
	})
	server := service.NewHTTPServer(service.HTTPServerConfig{
		Address:         "127.0.0.1:0",
		Handler:         wrapHandler(router, logger, clock.Real(), true),
		ShutdownTimeout: 2 * time.Second,
		Logger:          logger,
	})

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(ctx)
	}()
	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server ready")

	base := "http://" + server.Addr().String()
	for _, tt := range []struct {
		path   string
		status int
		body   string
	}{
		{"/abc123", http.StatusOK, "fn main() {}"},
		{"/doesnotexist", http.StatusNotFound, "Not Found\n"},
	} {
		response, err := http.Get(base + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		body, _ := io.ReadAll(response.Body)
		response.Body.Close()
		if response.StatusCode != tt.status || string(body) != tt.body {
			t.Errorf("GET %s = %d %q, want %d %q", tt.path, response.StatusCode, body, tt.status, tt.body)
		}
	}

	cancel()
	if err := testutil.RequireReceive[error](t, serveDone, 5*time.Second, "server shutdown"); err != nil {
		t.Errorf("Serve() = %v, want nil", err)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() must return nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() must return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("default logger should not be enabled")
	}
}

func TestSetLoggerUsedByGraph(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	g := New()
	_ = g.AddEdge("A_out", "B.in")
	if !strings.Contains(buf.String(), "bad field address") {
		t.Errorf("expected warning through the package logger, got %q", buf.String())
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("SetLogger(nil) must restore a non-nil logger")
	}
	if Logger().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("SetLogger(nil) must restore the silent logger")
	}
}

func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	var own bytes.Buffer
	g := New(WithLogger(slog.New(slog.NewTextHandler(&own, nil))))
	_ = g.RemovePass("missing")
	if !strings.Contains(own.String(), "missing") {
		t.Errorf("expected warning through the graph logger, got %q", own.String())
	}
}

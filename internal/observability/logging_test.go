package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextFields(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithBackend(ctx, "xcodebuild")
	ctx = WithStage(ctx, "validate")

	lc := GetContext(ctx)
	if lc.RunID != "run-1" || lc.Backend != "xcodebuild" || lc.Stage != "validate" {
		t.Fatalf("unexpected context %+v", lc)
	}

	// Later values replace earlier ones without touching the parent.
	child := WithStage(ctx, "generate")
	if GetContext(child).Stage != "generate" || GetContext(ctx).Stage != "validate" {
		t.Fatal("stage not scoped to child context")
	}
}

func TestEmptyContext(t *testing.T) {
	if lc := GetContext(context.Background()); lc != (LogContext{}) {
		t.Fatalf("expected empty context, got %+v", lc)
	}
}

func TestLogHelpersIncludeContext(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithStage(WithRunID(context.Background(), "run-2"), "extract")

	InfoContext(ctx, "info", slog.String("target", "Core"))
	DebugContext(ctx, "debug")
	WarnContext(ctx, "warn")
	ErrorContext(context.Background(), "bare")

	out := buf.String()
	for _, want := range []string{
		"msg=info run_id=run-2 stage=extract target=Core",
		"level=DEBUG msg=debug run_id=run-2 stage=extract",
		"level=WARN msg=warn run_id=run-2 stage=extract",
		"level=ERROR msg=bare\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	return exporter
}

func spanAttrs(s tracetest.SpanStub) map[string]string {
	attrs := make(map[string]string, len(s.Attributes))
	for _, a := range s.Attributes {
		attrs[string(a.Key)] = a.Value.Emit()
	}
	return attrs
}

func TestTraceQuery_RecordsSystemAndStatement(t *testing.T) {
	tests := []struct {
		system    string
		operation string
		statement string
	}{
		{SystemPostgres, "Get", "SELECT value FROM cart_storage WHERE key = $1"},
		{SystemRedis, "Set", "SET FoodSprintCart"},
		{SystemMemory, "Get", "FoodSprintCart"},
	}

	for _, tt := range tests {
		t.Run(tt.system, func(t *testing.T) {
			exporter := setupTestTracer(t)

			_, end := TraceQuery(context.Background(), tt.system, tt.operation, tt.statement)
			end(nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, "db."+tt.operation, spans[0].Name)
			assert.Equal(t, codes.Unset, spans[0].Status.Code)

			attrs := spanAttrs(spans[0])
			assert.Equal(t, tt.system, attrs["db.system"])
			assert.Equal(t, tt.operation, attrs["db.operation"])
			assert.Equal(t, tt.statement, attrs["db.statement"])
		})
	}
}

func TestTraceQuery_Error(t *testing.T) {
	exporter := setupTestTracer(t)

	_, end := TraceQuery(context.Background(), SystemRedis, "Set", "SET FoodSprintCart")
	end(errors.New("connection refused"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.NotEmpty(t, spans[0].Events, "error event should be recorded")
}

func TestTraceQuery_ChildOfParent(t *testing.T) {
	exporter := setupTestTracer(t)

	ctx, parent := otel.Tracer("test").Start(context.Background(), "parent")
	_, end := TraceQuery(ctx, SystemPostgres, "Get", "SELECT 1")
	end(nil)
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

// --- slow query logging ---

func TestSlowQueryLogging_Slow(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	SetSlowQueryLogging(time.Nanosecond, slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), SystemPostgres, "Set", "INSERT INTO cart_storage")
	end(errors.New("unique constraint violation"))

	out := buf.String()
	assert.Contains(t, out, "slow query detected")
	assert.Contains(t, out, `"db_system":"postgresql"`)
	assert.Contains(t, out, "INSERT INTO cart_storage")
	assert.Contains(t, out, "unique constraint violation")
}

func TestSlowQueryLogging_FastQueryNotLogged(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	SetSlowQueryLogging(time.Hour, slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), SystemRedis, "Get", "GET k")
	end(nil)

	assert.Empty(t, buf.String())
}

func TestSlowQueryLogging_DisabledWithNilLogger(t *testing.T) {
	setupTestTracer(t)
	SetSlowQueryLogging(0, nil)

	_, end := TraceQuery(context.Background(), SystemMemory, "Get", "k")
	assert.NotPanics(t, func() { end(nil) })
}

func TestSetSlowQueryLogging_Concurrent(t *testing.T) {
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })
	logger := slog.New(slog.DiscardHandler)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			SetSlowQueryLogging(time.Duration(i)*time.Millisecond, logger)
		}
	}()
	for i := 0; i < 100; i++ {
		slowQueryConfig()
	}
	<-done
}

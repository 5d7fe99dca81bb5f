package database

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/salmankhalil12/Restaurant-Site/pkg/database"

// Values for the db.system span attribute.
const (
	SystemPostgres = "postgresql"
	SystemRedis    = "redis"
	SystemMemory   = "memory"
)

var slowCfg struct {
	mu        sync.RWMutex
	threshold time.Duration
	logger    *slog.Logger
}

// SetSlowQueryLogging logs operations slower than threshold as warnings.
// A zero threshold turns it off.
func SetSlowQueryLogging(threshold time.Duration, logger *slog.Logger) {
	slowCfg.mu.Lock()
	defer slowCfg.mu.Unlock()
	slowCfg.threshold = threshold
	slowCfg.logger = logger
}

func slowQueryConfig() (time.Duration, *slog.Logger) {
	slowCfg.mu.RLock()
	defer slowCfg.mu.RUnlock()
	return slowCfg.threshold, slowCfg.logger
}

// TraceQuery starts a client span for a storage operation against system.
// Call the returned function with the operation's error when it completes:
//
//	ctx, end := database.TraceQuery(ctx, database.SystemRedis, "Get", "GET FoodSprintCart")
//	defer func() { end(err) }()
func TraceQuery(ctx context.Context, system, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", system),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		threshold, logger := slowQueryConfig()
		if threshold <= 0 || logger == nil {
			return
		}
		if elapsed := time.Since(start); elapsed >= threshold {
			attrs := []any{
				slog.String("db_system", system),
				slog.String("operation", operation),
				slog.String("statement", statement),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			logger.WarnContext(ctx, "slow query detected", attrs...)
		}
	}
}

package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls the GORM tracing plugin
type DBTracingConfig struct {
	Enabled         bool
	DBName          string
	SlowQueryThresh time.Duration
	// WithVariables puts bound values into db.statement; keep it off outside development
	WithVariables bool
	// PoolMetrics reports database/sql pool statistics through the global meter
	PoolMetrics bool
	// TracerProvider overrides the global provider, mainly for tests
	TracerProvider trace.TracerProvider
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm and a callback pair that flags
// statements slower than SlowQueryThresh on their span
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.WithVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if !cfg.PoolMetrics {
		opts = append(opts, otelgorm.WithoutMetrics())
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	slow := slowQueryCallback(cfg.SlowQueryThresh)
	cb := db.Callback()
	hooks := []struct {
		op     string
		before error
		after  error
	}{
		{"create",
			cb.Create().Before("gorm:create").Register("slow_query:before_create", markQueryStart),
			cb.Create().After("gorm:create").Before("otel:after:create").Register("slow_query:after_create", slow)},
		{"query",
			cb.Query().Before("gorm:query").Register("slow_query:before_query", markQueryStart),
			cb.Query().After("gorm:query").Before("otel:after:select").Register("slow_query:after_query", slow)},
		{"update",
			cb.Update().Before("gorm:update").Register("slow_query:before_update", markQueryStart),
			cb.Update().After("gorm:update").Before("otel:after:update").Register("slow_query:after_update", slow)},
		{"delete",
			cb.Delete().Before("gorm:delete").Register("slow_query:before_delete", markQueryStart),
			cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("slow_query:after_delete", slow)},
		{"row",
			cb.Row().Before("gorm:row").Register("slow_query:before_row", markQueryStart),
			cb.Row().After("gorm:row").Before("otel:after:row").Register("slow_query:after_row", slow)},
		{"raw",
			cb.Raw().Before("gorm:raw").Register("slow_query:before_raw", markQueryStart),
			cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("slow_query:after_raw", slow)},
	}
	for _, h := range hooks {
		if h.before != nil {
			return h.before
		}
		if h.after != nil {
			return h.after
		}
	}

	logger.Info("Database tracing enabled",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.Bool("with_variables", cfg.WithVariables),
	)
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func slowQueryCallback(threshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}
		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		if !ok {
			return
		}
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}

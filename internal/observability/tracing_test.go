package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := Tracer
	Tracer = tp.Tracer("test")
	t.Cleanup(func() {
		Tracer = prev
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func attrMap(kvs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func TestNewSpan_RecordsError(t *testing.T) {
	rec := useRecorder(t)

	span, _ := NewSpan(context.Background(), "seed.movies", attribute.Int("seed.step", 1))
	span.AddAttributes(attribute.Int64("seed.elapsed_ms", 12))
	span.SetError(errors.New("boom"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "seed.movies", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, "1", attrs["seed.step"])
	assert.Equal(t, "12", attrs["seed.elapsed_ms"])
}

func TestClientSpans(t *testing.T) {
	rec := useRecorder(t)

	_, span := TraceRepositoryMethod(context.Background(), "insert", "movies", "postgres")
	RecordError(span, nil)
	span.End()
	_, span = TraceRedisOperation(context.Background(), "lock_acquire")
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, "postgres.insert", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	repo := attrMap(ended[0].Attributes())
	assert.Equal(t, "movies", repo["db.sql.table"])
	assert.Equal(t, "postgres", repo["db.system"])

	assert.Equal(t, "redis.lock_acquire", ended[1].Name())
	assert.Equal(t, "redis", attrMap(ended[1].Attributes())["db.system"])
}

func TestInitTracing(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "cinedex"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, err = InitTracing(TracingConfig{ServiceName: "cinedex", Enabled: true, Exporter: "zipkin"})
	assert.ErrorContains(t, err, "unsupported TRACING_EXPORTER")
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Contains(t, samplerFor(0.25).Description(), "ParentBased")
}

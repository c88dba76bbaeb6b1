package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordHandler captures handled records for assertions.
type recordHandler struct {
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func recordAttrs(r slog.Record) map[string]slog.Value {
	attrs := make(map[string]slog.Value)
	r.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value
		return true
	})
	return attrs
}

func TestErrorAttrReplacer(t *testing.T) {
	err := errors.New("boom")

	replaced := errorAttrReplacer(nil, slogx.Error(err))
	assert.Equal(t, ErrorKey, replaced.Key)
	assert.Equal(t, "boom", replaced.Value.String())

	replaced = errorAttrReplacer(nil, slog.Any("err", err))
	assert.Equal(t, ErrorKey, replaced.Key)
	assert.Equal(t, "boom", replaced.Value.String())

	unrelated := slog.String("event", "noop")
	assert.Equal(t, unrelated, errorAttrReplacer(nil, unrelated))
}

func TestMiddlewareErrorStackTrace(t *testing.T) {
	handler := &recordHandler{}
	log := slog.New(newChainHandlers(handler, middlewareErrorStackTrace()))

	t.Run("error with stack", func(t *testing.T) {
		handler.records = nil
		log.Error("failed", slogx.Error(errors.New("boom")))

		require.Len(t, handler.records, 1)
		attrs := recordAttrs(handler.records[0])
		require.Contains(t, attrs, ErrorVerboseKey)
		assert.Contains(t, attrs[ErrorVerboseKey].String(), "boom")
		require.Contains(t, attrs, ErrorStackTraceKey)
		assert.NotEmpty(t, attrs[ErrorStackTraceKey].Any())
	})

	t.Run("record without error untouched", func(t *testing.T) {
		handler.records = nil
		log.Info("ok", slog.String("event", "noop"))

		require.Len(t, handler.records, 1)
		attrs := recordAttrs(handler.records[0])
		assert.NotContains(t, attrs, ErrorVerboseKey)
		assert.NotContains(t, attrs, ErrorStackTraceKey)
	})
}

func TestErrorContextAppendsErrorAttr(t *testing.T) {
	handler := &recordHandler{}
	prev := logger
	logger = slog.New(handler)
	defer func() { logger = prev }()

	err := errors.New("boom")
	ErrorContext(context.Background(), "failed", err, slogx.String("event", "test"))

	require.Len(t, handler.records, 1)
	attrs := recordAttrs(handler.records[0])
	require.Contains(t, attrs, slogx.ErrorKey)
	assert.Equal(t, err, attrs[slogx.ErrorKey].Any())
	assert.Equal(t, "test", attrs["event"].String())
}

func TestInit(t *testing.T) {
	prev := logger
	defer func() {
		logger = prev
		slog.SetDefault(prev)
		lvl.Set(DefaultLevel)
	}()

	for _, output := range []string{"text", "json", "gcp"} {
		t.Run(output, func(t *testing.T) {
			require.NoError(t, Init(Config{Output: output, Debug: true}))
		})
	}
}

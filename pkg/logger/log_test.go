package logger

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(WithLoggingLevel(DebugLevel), WithOutputPaths([]string{"stderr"}), WithName("test"))
	require.NoError(t, err)
	require.NotNil(t, log.GetZap())
	assert.True(t, log.GetZap().Core().Enabled(zapcore.DebugLevel))
}

func TestLevel_getZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Level("DEBUG").getZapLevel())
	assert.Equal(t, zapcore.WarnLevel, WarnLevel.getZapLevel())
	assert.Equal(t, zapcore.InfoLevel, Level("verbose").getZapLevel())
}

func TestLogger_ContextFields(t *testing.T) {
	log, logs := newObserved(t)

	ctx := util.WithSymbol(util.WithRequestID(context.Background(), "req-42"), "ETH-USD")
	log.InfoContext(ctx, "order executed", NewField("order_id", "o-1"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "ETH-USD", fields["symbol"])
	assert.Equal(t, "o-1", fields["order_id"])
}

func TestLogger_ErrorCarriesCode(t *testing.T) {
	log, logs := newObserved(t)

	err := errors.NewErrorDetails("book crossed", string(errors.InvariantViolationError), "book")
	log.Error(err, NewField("symbol", "BTC-USD"))

	tracer := errors.NewTracer("publish failed").Wrap(stderrors.New("broker down"))
	log.WithFields(NewField("component", "publisher")).Error(tracer)

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "book crossed", first.Message)
	assert.Equal(t, string(errors.InvariantViolationError), first.ContextMap()["code"])

	second := logs.All()[1]
	assert.Equal(t, "publish failed: broker down", second.Message)
	assert.Equal(t, "publisher", second.ContextMap()["component"])
	assert.NotEmpty(t, second.Stack)
}

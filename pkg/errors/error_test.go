package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDetails_Is(t *testing.T) {
	sentinel := NewErrorDetails("invalid order", string(InvalidOrderError), "")

	t.Run("same code matches", func(t *testing.T) {
		err := NewErrorDetails("price must be positive", string(InvalidOrderError), "price")
		assert.True(t, stderrors.Is(err, sentinel))
	})

	t.Run("wrapped detail matches", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", NewErrorDetails("bad side", string(InvalidOrderError), "side"))
		assert.True(t, stderrors.Is(err, sentinel))
		assert.True(t, ErrorCodeEquals(err, string(InvalidOrderError)))
	})

	t.Run("different code does not match", func(t *testing.T) {
		err := NewErrorDetails("no book", string(UnknownSymbolError), "symbol")
		assert.False(t, stderrors.Is(err, sentinel))
	})
}

func TestBaseError(t *testing.T) {
	base := NewBaseError()
	assert.False(t, base.HasDetails())
	assert.False(t, base.IsAllCodeEqual(string(InvalidOrderError)))

	base.AddErrorDetails(
		NewErrorDetails("price must be positive", string(InvalidOrderError), "price"),
		NewErrorDetails("quantity must be positive", string(InvalidOrderError), "quantity"),
	)
	base.PrependFields("order.")

	require.True(t, base.HasDetails())
	assert.Equal(t, []string{"order.price", "order.quantity"}, base.Fields())
	assert.True(t, base.IsAllCodeEqual(string(InvalidOrderError)))
	assert.True(t, base.IsAnyCodeEqual(string(InvalidOrderError)))
	assert.False(t, base.IsAnyCodeEqual(string(UnknownSymbolError)))
	assert.Contains(t, base.Error(), "field: order.price")

	sentinel := NewErrorDetails("invalid order", string(InvalidOrderError), "")
	assert.True(t, stderrors.Is(fmt.Errorf("wrap: %w", base), sentinel))
	assert.Equal(t, string(InvalidOrderError), CodeOf(base))
}

func TestErrorTracer(t *testing.T) {
	cause := stderrors.New("connection refused")
	tracer := NewTracer("snapshot_store_error").Wrap(cause)

	assert.Equal(t, "snapshot_store_error: connection refused", tracer.Error())
	assert.True(t, stderrors.Is(tracer, cause))
	assert.NotNil(t, tracer.StackTrace())

	same := TracerFromError(cause)
	assert.Equal(t, "connection refused", same.Error())
	assert.Equal(t, "", CodeOf(same))
}

package adapter

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan/internal/service/checkout/port"
)

var orderIDPattern = regexp.MustCompile(`^ORD-[0-9A-F]{9}$`)

func TestSimulatedGatewaySuccess(t *testing.T) {
	gateway := NewSimulatedGateway(0, 0)

	id, err := gateway.SubmitOrder(context.Background(), port.OrderDraft{})
	require.NoError(t, err)
	assert.Regexp(t, orderIDPattern, id)
}

func TestSimulatedGatewayIDsAreUnique(t *testing.T) {
	gateway := NewSimulatedGateway(0, 0)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := gateway.SubmitOrder(context.Background(), port.OrderDraft{})
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}

func TestSimulatedGatewayAlwaysFails(t *testing.T) {
	gateway := NewSimulatedGateway(0, 1.0)

	_, err := gateway.SubmitOrder(context.Background(), port.OrderDraft{})
	assert.ErrorIs(t, err, port.ErrSubmissionFailed)
}

func TestSimulatedGatewayRespectsContextCancellation(t *testing.T) {
	gateway := NewSimulatedGateway(time.Minute, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gateway.SubmitOrder(ctx, port.OrderDraft{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

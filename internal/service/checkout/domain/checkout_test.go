// internal/service/checkout/domain/checkout_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "artisan/internal/service/cart/domain"
)

func TestCheckoutHappyPath(t *testing.T) {
	co := NewCheckout(validCreditCustomer())
	assert.Equal(t, StateEditing, co.State)

	require.NoError(t, co.BeginValidation())
	assert.Equal(t, StateValidating, co.State)

	require.NoError(t, co.BeginSubmission())
	assert.Equal(t, StateSubmitting, co.State)

	order := &Order{ID: "ORD-TEST"}
	require.NoError(t, co.Complete(order))
	assert.Equal(t, StateComplete, co.State)
	assert.Same(t, order, co.Order)
}

func TestCheckoutGuardsRejectOutOfOrderTransitions(t *testing.T) {
	co := NewCheckout(validCreditCustomer())

	// 还在编辑中不能提交或完成
	assert.Error(t, co.BeginSubmission())
	assert.Error(t, co.Complete(&Order{}))

	require.NoError(t, co.BeginValidation())
	// 校验中不能再次进入校验
	assert.Error(t, co.BeginValidation())
	assert.Error(t, co.Complete(&Order{}))
}

func TestCheckoutFailValidationReturnsToEditing(t *testing.T) {
	co := NewCheckout(CustomerInfo{})
	require.NoError(t, co.BeginValidation())

	fieldErrors := map[string]string{"email": "This field is required"}
	co.FailValidation(fieldErrors, "email")

	assert.Equal(t, StateEditing, co.State)
	assert.Equal(t, fieldErrors, co.FieldErrors)
	assert.Equal(t, "email", co.FirstError)

	// 修正后可以重新走完整流程
	require.NoError(t, co.BeginValidation())
	require.NoError(t, co.BeginSubmission())
	assert.Nil(t, co.FieldErrors)
	assert.Empty(t, co.FirstError)
}

func TestCheckoutFailSubmissionKeepsCustomerData(t *testing.T) {
	customer := validCreditCustomer()
	co := NewCheckout(customer)
	require.NoError(t, co.BeginValidation())
	require.NoError(t, co.BeginSubmission())

	co.FailSubmission()

	assert.Equal(t, StateEditing, co.State)
	assert.Equal(t, customer, co.Customer)
	assert.Nil(t, co.Order)
}

func TestNewOrderSnapshotsCartAndSanitizesCustomer(t *testing.T) {
	snapshot := cartdomain.CalculateTotals([]cartdomain.LineItem{
		{ID: "p-1", Name: "Handcrafted Ceramic Mug", Price: 24.99, Quantity: 3},
	})

	order := NewOrder("ORD-ABC123DEF", validCreditCustomer(), snapshot)

	require.Len(t, order.Lines, 1)
	assert.Equal(t, "p-1", order.Lines[0].ProductID)
	assert.Equal(t, 3, order.Lines[0].Quantity)
	assert.InDelta(t, 24.99, order.Lines[0].UnitPrice, 1e-9)
	assert.Equal(t, 3, order.ItemCount)
	assert.InDelta(t, 74.97, order.Total, 1e-9)
	assert.InDelta(t, 0, order.Shipping, 1e-9)
	assert.InDelta(t, 5.2479, order.Tax, 1e-9)
	assert.InDelta(t, 80.2179, order.GrandTotal, 1e-9)
	assert.Empty(t, order.Customer.CardNumber)
	assert.False(t, order.PlacedAt.IsZero())
}

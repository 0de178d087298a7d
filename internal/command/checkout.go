package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// CheckoutRequest identifies the user whose cart is being checked out.
type CheckoutRequest struct {
	UserID int64
}

// Checkout turns a user's cart into an order. The storage layer performs the
// conversion atomically; this command only supplies the order number.
type Checkout struct {
	Orders datasources.OrderCreator
	// NewOrderNumber generates the public order identifier. Replaceable for
	// deterministic tests.
	NewOrderNumber func() string
}

// NewCheckout creates a properly initialized Checkout command.
func NewCheckout(orders datasources.OrderCreator) *Checkout {
	return &Checkout{
		Orders:         orders,
		NewOrderNumber: func() string { return uuid.New().String() },
	}
}

func (c *Checkout) Execute(ctx context.Context, req CheckoutRequest) (domain.Order, error) {
	order, err := c.Orders.CreateOrderFromCart(ctx, req.UserID, c.NewOrderNumber())
	if err != nil {
		return domain.Order{}, fmt.Errorf("creating order from cart: %w", err)
	}

	logger := domain.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "order created",
		"order_number", order.OrderNumber, "total_cents", order.TotalCents)

	return order, nil
}

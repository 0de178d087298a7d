package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// CreateOrderFromCart converts the user's cart into an order in a single
// transaction: reprice from current product rows, verify stock, insert the
// order and its items, decrement stock, clear the cart.
func (r *Repository) CreateOrderFromCart(
	ctx context.Context, userID int64, orderNumber string,
) (domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	items, err := lockCartItems(ctx, tx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) == 0 {
		return domain.Order{}, datasources.ErrEmptyCart
	}

	var total int64
	for _, item := range items {
		if item.Quantity > item.Stock {
			return domain.Order{}, fmt.Errorf("product %d: %w", item.ProductID, datasources.ErrInsufficientStock)
		}
		total += item.PriceCents * item.Quantity
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (order_number, user_id, status, total_cents, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		orderNumber, userID, string(domain.OrderStatusPending), total,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("inserting order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return domain.Order{}, fmt.Errorf("reading order insert ID: %w", err)
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_cents)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.ProductName, item.Quantity, item.PriceCents,
		); err != nil {
			return domain.Order{}, fmt.Errorf("inserting order item: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - ? WHERE id = ?",
			item.Quantity, item.ProductID,
		); err != nil {
			return domain.Order{}, fmt.Errorf("decrementing stock: %w", err)
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.PriceCents,
		})
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		return domain.Order{}, fmt.Errorf("clearing cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("committing transaction: %w", err)
	}

	order := domain.Order{
		ID:          orderID,
		OrderNumber: orderNumber,
		UserID:      userID,
		Status:      domain.OrderStatusPending,
		TotalCents:  total,
		Items:       orderItems,
	}
	return order, nil
}

// lockCartItems reads the user's cart lines with their current product rows,
// locking the product rows so stock checks hold until commit.
func lockCartItems(ctx context.Context, tx *sql.Tx, userID int64) ([]domain.CartItem, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT ci.product_id, p.name, p.price_cents, p.stock, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		FOR UPDATE`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("locking cart items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.PriceCents, &item.Stock, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scanning cart items: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return items, nil
}

func (r *Repository) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_number, status, total_cents, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("running orders query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := []domain.Order{}
	for rows.Next() {
		order := domain.Order{UserID: userID}
		var status string
		if err := rows.Scan(&order.ID, &order.OrderNumber, &status, &order.TotalCents, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning orders: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return orders, nil
}

func (r *Repository) GetOrderByNumber(
	ctx context.Context, userID int64, orderNumber string,
) (domain.Order, error) {
	order := domain.Order{UserID: userID}
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, order_number, status, total_cents, created_at
		FROM orders
		WHERE user_id = ? AND order_number = ?`,
		userID, orderNumber,
	).Scan(&order.ID, &order.OrderNumber, &status, &order.TotalCents, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("fetching order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, product_name, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_id`,
		order.ID,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("running order items query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPriceCents); err != nil {
			return domain.Order{}, fmt.Errorf("scanning order items: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("iterating rows: %w", err)
	}

	return order, nil
}

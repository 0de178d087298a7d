package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/verdantly/wellness-api/internal/domain"
)

func (r *Repository) GetCart(ctx context.Context, userID int64) (domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ci.product_id, p.name, p.price_cents, p.stock, ci.quantity, ci.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.updated_at DESC, ci.product_id`,
		userID,
	)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("running cart query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cart := domain.Cart{UserID: userID, Items: []domain.CartItem{}}
	for rows.Next() {
		var item domain.CartItem
		var updatedAt time.Time
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.PriceCents, &item.Stock, &item.Quantity, &updatedAt); err != nil {
			return domain.Cart{}, fmt.Errorf("scanning cart items: %w", err)
		}
		if updatedAt.After(cart.UpdatedAt) {
			cart.UpdatedAt = updatedAt
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("iterating rows: %w", err)
	}

	cart.TotalCents = cart.Total()
	return cart, nil
}

// UpsertCartItem sets the quantity for a cart line, creating it when absent.
func (r *Repository) UpsertCartItem(ctx context.Context, userID, productID, quantity int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity, updated_at)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), updated_at = NOW()`,
		userID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("upserting cart item: %w", err)
	}
	return nil
}

func (r *Repository) RemoveCartItem(ctx context.Context, userID, productID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ? AND product_id = ?",
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("removing cart item: %w", err)
	}
	return nil
}

package cart

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Cart struct {
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repo struct{ DB *pgxpool.Pool }

// Get returns nil when the user has no cart items.
func (r *Repo) Get(ctx context.Context, userID string) (*Cart, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, quantity, updated_at
		FROM cart_items WHERE user_id=$1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &Cart{UserID: userID}
	for rows.Next() {
		var it Item
		var at time.Time
		if err := rows.Scan(&it.ProductID, &it.Quantity, &at); err != nil {
			return nil, err
		}
		if at.After(c.UpdatedAt) {
			c.UpdatedAt = at
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, nil
	}
	return c, nil
}

// Add merges quantity into an existing line for the same product. The upsert
// is a single statement, so concurrent adds for one user serialize in the
// store instead of losing updates.
func (r *Repo) Add(ctx context.Context, userID, productID string, qty int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO cart_items(user_id, product_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`,
		userID, productID, qty)
	return err
}

func (r *Repo) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`, userID, productID)
	return err
}

// Replace swaps the whole cart content in one transaction. Used by the order
// engine to persist a self-healed cart.
func (r *Repo) Replace(ctx context.Context, userID string, items []Item) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_items(user_id, product_id, quantity) VALUES ($1,$2,$3)`,
			userID, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) Delete(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}

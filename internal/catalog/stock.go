package catalog

import "context"

// TryReserve decrements available stock if and only if enough remains. The
// check and the decrement are a single conditional statement, so concurrent
// reservations against one product cannot race past each other.
func (r *Repo) TryReserve(ctx context.Context, productID string, qty int) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, productID, qty)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

func (r *Repo) Restock(ctx context.Context, productID string, qty int) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1`, productID, qty)
	return err
}

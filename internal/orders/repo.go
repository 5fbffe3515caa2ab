package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, user_id, customer_name, customer_email, customer_phone,
	customer_address, customer_city, customer_state, delivery_option,
	pickup_location, estimated_delivery, delivery_fee, total_amount,
	prescription_url, payment_reference, payment_note, status, delivery_status,
	rider_id, rider_name, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Customer.Address, &o.Customer.City, &o.Customer.State, &o.Customer.DeliveryOption,
		&o.Customer.PickupLocation, &o.Customer.EstimatedDelivery, &o.DeliveryFee, &o.TotalAmount,
		&o.PrescriptionURL, &o.PaymentReference, &o.PaymentNote, &o.Status, &o.DeliveryStatus,
		&o.RiderID, &o.RiderName, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return o, ErrOrderNotFound
	}
	return o, err
}

func (r *Repo) Insert(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, user_id, customer_name, customer_email, customer_phone,
			customer_address, customer_city, customer_state, delivery_option,
			pickup_location, estimated_delivery, delivery_fee, total_amount,
			prescription_url, payment_reference, payment_note, status, delivery_status,
			rider_id, rider_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Customer.Address, o.Customer.City, o.Customer.State, o.Customer.DeliveryOption,
		o.Customer.PickupLocation, o.Customer.EstimatedDelivery, o.DeliveryFee, o.TotalAmount,
		o.PrescriptionURL, o.PaymentReference, o.PaymentNote, o.Status, o.DeliveryStatus,
		o.RiderID, o.RiderName,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, price)
			VALUES ($1,$2,$3,$4)`,
			o.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	items, err := r.itemsFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	return &o, nil
}

// Update persists the mutable fields of an order; line items never change
// after creation.
func (r *Repo) Update(ctx context.Context, o *Order) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET payment_reference=$2, payment_note=$3, status=$4, delivery_status=$5,
			rider_id=$6, rider_name=$7, updated_at=now()
		WHERE id=$1`,
		o.ID, o.PaymentReference, o.PaymentNote, o.Status, o.DeliveryStatus, o.RiderID, o.RiderName)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *Repo) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders WHERE customer_email=$1 ORDER BY created_at DESC`, email)
}

func (r *Repo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
}

// ListAdmin excludes orders still awaiting payment.
func (r *Repo) ListAdmin(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders WHERE status <> $1 ORDER BY created_at DESC`, StatusPending)
}

func (r *Repo) ListByRider(ctx context.Context, riderID string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders WHERE rider_id=$1 AND status=$2 ORDER BY created_at DESC`,
		riderID, StatusAccepted)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *Repo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]LineItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, quantity, price
		FROM order_items WHERE order_id = ANY($1) ORDER BY product_id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]LineItem, len(orderIDs))
	for rows.Next() {
		var oid string
		var it LineItem
		if err := rows.Scan(&oid, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out[oid] = append(out[oid], it)
	}
	return out, rows.Err()
}

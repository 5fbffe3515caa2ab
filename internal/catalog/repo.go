package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, description, price, stock, category, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	p.ID = uuid.NewString()
	return r.DB.QueryRow(ctx, `
		INSERT INTO products(id, name, description, price, stock, category, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *Repo) Update(ctx context.Context, p *Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, stock=$5, category=$6, image_url=$7, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageURL)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetImageURL(ctx context.Context, id, url string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE products SET image_url=$2, updated_at=now() WHERE id=$1`, id, url)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

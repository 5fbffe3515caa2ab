package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleRider    Role = "rider"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"verified"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrNotVerified   = errors.New("email not verified")
	ErrBadCredential = errors.New("invalid email or password")
)

type Repo struct{ DB *pgxpool.Pool }

const userCols = `id, name, email, phone, role, verified, password_hash, created_at`

// uniqueViolation is the postgres error code for duplicate keys.
const uniqueViolation = "23505"

// translateUnique maps a unique-constraint violation to a domain error, so a
// concurrent duplicate insert surfaces the same way the pre-check does.
func translateUnique(err, to error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return to
	}
	return err
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Verified, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (r *Repo) Create(ctx context.Context, u *User) error {
	u.ID = uuid.NewString()
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(id, name, email, phone, role, verified, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		u.ID, u.Name, u.Email, u.Phone, u.Role, u.Verified, u.PasswordHash,
	).Scan(&u.CreatedAt)
	return translateUnique(err, ErrEmailTaken)
}

func (r *Repo) GetByID(ctx context.Context, id string) (User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *Repo) MarkVerified(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE users SET verified=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) UpdatePassword(ctx context.Context, id, hash string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, id, hash)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) UpdateProfile(ctx context.Context, id, name, email string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE users SET name=$2, email=$3 WHERE id=$1`, id, name, email)
	if err != nil {
		return translateUnique(err, ErrEmailTaken)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) UpdateRole(ctx context.Context, id string, role Role) error {
	ct, err := r.DB.Exec(ctx, `UPDATE users SET role=$2 WHERE id=$1`, id, role)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListRiders(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userCols+` FROM users WHERE role=$1 ORDER BY name`, RoleRider)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

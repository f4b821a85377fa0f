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

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	MaxProjects  int       `json:"max_projects"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const userColumns = `id, email, password_hash, name, role, is_verified, max_projects, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.IsVerified, &u.MaxProjects, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Create(ctx context.Context, email, passwordHash, name string) (*User, error) {
	const q = `
insert into users (id, email, password_hash, name, role, is_verified, max_projects)
values ($1, $2, $3, $4, 'user', false, 1)
returning ` + userColumns + `;
`
	u, err := scanUser(r.db.QueryRow(ctx, q, uuid.NewString(), email, passwordHash, name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	const q = `select ` + userColumns + ` from users where id = $1;`
	return scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `select ` + userColumns + ` from users where email = $1;`
	return scanUser(r.db.QueryRow(ctx, q, email))
}

func (r *Repo) UpdateName(ctx context.Context, id, name string) (*User, error) {
	const q = `
update users set name = $2, updated_at = now()
where id = $1
returning ` + userColumns + `;
`
	return scanUser(r.db.QueryRow(ctx, q, id, name))
}

// SetVerified flips the verification flag; project export is gated on it.
func (r *Repo) SetVerified(ctx context.Context, id string, verified bool) error {
	const q = `update users set is_verified = $2, updated_at = now() where id = $1;`
	ct, err := r.db.Exec(ctx, q, id, verified)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

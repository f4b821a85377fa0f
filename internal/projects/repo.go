package projects

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
	ErrNotFound  = errors.New("project not found")
	ErrSlugTaken = errors.New("project slug already exists")
)

type Project struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Slug      string                 `json:"slug"`
	IsPublic  bool                   `json:"is_public"`
	Settings  map[string]interface{} `json:"settings"`
	UserID    string                 `json:"user_id"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectColumns = `id, name, slug, is_public, coalesce(settings, '{}'::jsonb), user_id, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.IsPublic, &p.Settings, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, userID, name, slug string, isPublic bool, settings map[string]interface{}) (*Project, error) {
	const q = `
insert into projects (id, name, slug, is_public, settings, user_id)
values ($1, $2, $3, $4, $5, $6)
returning ` + projectColumns + `;
`
	if settings == nil {
		settings = map[string]interface{}{}
	}
	p, err := scanProject(r.db.QueryRow(ctx, q, uuid.NewString(), name, slug, isPublic, settings, userID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return p, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where user_id = $1 and deleted_at is null
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.IsPublic, &p.Settings, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) CountByUser(ctx context.Context, userID string) (int, error) {
	const q = `select count(*) from projects where user_id = $1 and deleted_at is null;`
	var n int
	if err := r.db.QueryRow(ctx, q, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetBySlug resolves a project regardless of owner. The export loader uses
// this to tell "absent" apart from "owned by someone else".
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	const q = `select ` + projectColumns + ` from projects where slug = $1 and deleted_at is null;`
	return scanProject(r.db.QueryRow(ctx, q, slug))
}

func (r *Repo) GetPublicBySlug(ctx context.Context, slug string) (*Project, error) {
	const q = `select ` + projectColumns + ` from projects where slug = $1 and is_public and deleted_at is null;`
	return scanProject(r.db.QueryRow(ctx, q, slug))
}

func (r *Repo) Update(ctx context.Context, userID, slug string, name, newSlug *string, isPublic *bool, settings map[string]interface{}) (*Project, error) {
	const q = `
update projects
set name = coalesce($3, name),
    slug = coalesce($4, slug),
    is_public = coalesce($5, is_public),
    settings = coalesce($6, settings),
    updated_at = now()
where user_id = $1 and slug = $2 and deleted_at is null
returning ` + projectColumns + `;
`
	var settingsArg interface{}
	if settings != nil {
		settingsArg = settings
	}
	p, err := scanProject(r.db.QueryRow(ctx, q, userID, slug, name, newSlug, isPublic, settingsArg))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return p, nil
}

func (r *Repo) SoftDelete(ctx context.Context, userID, slug string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1 and slug = $2 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userID, slug)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// PurgeDeletedBefore hard-deletes projects soft-deleted before cutoff.
// Pages, sections and components go with them via FK cascade.
func (r *Repo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `delete from projects where deleted_at is not null and deleted_at < $1;`
	ct, err := r.db.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

package pages

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("page not found")

type Page struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Order     int       `json:"order"`
	IsHome    bool      `json:"is_home"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const pageColumns = `id, name, path, "order", is_home, project_id, created_at, updated_at`

func scanPage(row pgx.Row) (*Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.Name, &p.Path, &p.Order, &p.IsHome, &p.ProjectID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create appends a page to the project. When order is nil the page lands at
// the end; when isHome is set the previous home page is cleared first so at
// most one home page exists per project.
func (r *Repo) Create(ctx context.Context, projectID, name, path string, order *int, isHome bool) (*Page, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if isHome {
		if _, err := tx.Exec(ctx, `update pages set is_home = false where project_id = $1;`, projectID); err != nil {
			return nil, err
		}
	}

	const q = `
insert into pages (id, name, path, "order", is_home, project_id)
values ($1, $2, $3,
        coalesce($4, (select coalesce(max("order"), -1) + 1 from pages where project_id = $6)),
        $5, $6)
returning ` + pageColumns + `;
`
	p, err := scanPage(tx.QueryRow(ctx, q, uuid.NewString(), name, path, order, isHome, projectID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) ListByProject(ctx context.Context, projectID string) ([]Page, error) {
	const q = `
select ` + pageColumns + `
from pages
where project_id = $1
order by "order" asc, created_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Page, 0, 8)
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ID, &p.Name, &p.Path, &p.Order, &p.IsHome, &p.ProjectID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Page, error) {
	const q = `select ` + pageColumns + ` from pages where id = $1;`
	return scanPage(r.db.QueryRow(ctx, q, id))
}

// OwnerOf resolves the owning user of a page through its project.
func (r *Repo) OwnerOf(ctx context.Context, pageID string) (string, error) {
	const q = `
select p.user_id
from pages pg
join projects p on p.id = pg.project_id
where pg.id = $1 and p.deleted_at is null;
`
	var userID string
	if err := r.db.QueryRow(ctx, q, pageID).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

func (r *Repo) Update(ctx context.Context, id string, name, path *string, order *int, isHome *bool) (*Page, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if isHome != nil && *isHome {
		const clear = `
update pages set is_home = false
where project_id = (select project_id from pages where id = $1);
`
		if _, err := tx.Exec(ctx, clear, id); err != nil {
			return nil, err
		}
	}

	const q = `
update pages
set name = coalesce($2, name),
    path = coalesce($3, path),
    "order" = coalesce($4, "order"),
    is_home = coalesce($5, is_home),
    updated_at = now()
where id = $1
returning ` + pageColumns + `;
`
	p, err := scanPage(tx.QueryRow(ctx, q, id, name, path, order, isHome))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from pages where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Reorder assigns sequential order values following the given id order.
// Every id must belong to the project.
func (r *Repo) Reorder(ctx context.Context, projectID string, pageIDs []string) ([]Page, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var count int
	const check = `select count(*) from pages where project_id = $1 and id = any($2);`
	if err := tx.QueryRow(ctx, check, projectID, pageIDs).Scan(&count); err != nil {
		return nil, err
	}
	if count != len(pageIDs) {
		return nil, ErrNotFound
	}

	const set = `update pages set "order" = $3, updated_at = now() where project_id = $1 and id = $2;`
	for i, id := range pageIDs {
		if _, err := tx.Exec(ctx, set, projectID, id, i); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.ListByProject(ctx, projectID)
}

package sections

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("section not found")

type Section struct {
	ID        string                 `json:"id"`
	Order     int                    `json:"order"`
	Height    int                    `json:"height"`
	Styles    map[string]interface{} `json:"styles"`
	PageID    string                 `json:"page_id"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const sectionColumns = `id, "order", height, coalesce(styles, '{}'::jsonb), page_id, created_at, updated_at`

func scanSection(row pgx.Row) (*Section, error) {
	var s Section
	err := row.Scan(&s.ID, &s.Order, &s.Height, &s.Styles, &s.PageID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, pageID string, order *int, height int, styles map[string]interface{}) (*Section, error) {
	const q = `
insert into sections (id, "order", height, styles, page_id)
values ($1,
        coalesce($2, (select coalesce(max("order"), -1) + 1 from sections where page_id = $5)),
        $3, $4, $5)
returning ` + sectionColumns + `;
`
	if styles == nil {
		styles = map[string]interface{}{}
	}
	if height == 0 {
		height = 400
	}
	return scanSection(r.db.QueryRow(ctx, q, uuid.NewString(), order, height, styles, pageID))
}

func (r *Repo) ListByPage(ctx context.Context, pageID string) ([]Section, error) {
	const q = `
select ` + sectionColumns + `
from sections
where page_id = $1
order by "order" asc, created_at asc;
`
	rows, err := r.db.Query(ctx, q, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Section, 0, 8)
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.Order, &s.Height, &s.Styles, &s.PageID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Section, error) {
	const q = `select ` + sectionColumns + ` from sections where id = $1;`
	return scanSection(r.db.QueryRow(ctx, q, id))
}

// OwnerOf resolves the owning user of a section through its page's project.
func (r *Repo) OwnerOf(ctx context.Context, sectionID string) (string, error) {
	const q = `
select p.user_id
from sections s
join pages pg on pg.id = s.page_id
join projects p on p.id = pg.project_id
where s.id = $1 and p.deleted_at is null;
`
	var userID string
	if err := r.db.QueryRow(ctx, q, sectionID).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

func (r *Repo) Update(ctx context.Context, id string, order, height *int, styles map[string]interface{}) (*Section, error) {
	const q = `
update sections
set "order" = coalesce($2, "order"),
    height = coalesce($3, height),
    styles = coalesce($4, styles),
    updated_at = now()
where id = $1
returning ` + sectionColumns + `;
`
	var stylesArg interface{}
	if styles != nil {
		stylesArg = styles
	}
	return scanSection(r.db.QueryRow(ctx, q, id, order, height, stylesArg))
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from sections where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

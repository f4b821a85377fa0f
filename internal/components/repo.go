package components

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("component not found")

type Component struct {
	ID        string                 `json:"id"`
	Type      Variant                `json:"type"`
	X         float64                `json:"x"`
	Y         float64                `json:"y"`
	Width     float64                `json:"width"`
	Height    float64                `json:"height"`
	Props     map[string]interface{} `json:"props"`
	Styles    map[string]interface{} `json:"styles"`
	ZIndex    int                    `json:"z_index"`
	SectionID string                 `json:"section_id"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const componentColumns = `id, type, x, y, width, height, coalesce(props, '{}'::jsonb), coalesce(styles, '{}'::jsonb), z_index, section_id, created_at, updated_at`

func scanComponent(row pgx.Row) (*Component, error) {
	var cp Component
	err := row.Scan(&cp.ID, &cp.Type, &cp.X, &cp.Y, &cp.Width, &cp.Height,
		&cp.Props, &cp.Styles, &cp.ZIndex, &cp.SectionID, &cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

func (r *Repo) Create(ctx context.Context, sectionID string, c *Component) (*Component, error) {
	const q = `
insert into components (id, type, x, y, width, height, props, styles, z_index, section_id)
values ($1, $2, $3, $4, $5, $6, $7, $8,
        coalesce($9, (select coalesce(max(z_index), -1) + 1 from components where section_id = $10)),
        $10)
returning ` + componentColumns + `;
`
	if c.Props == nil {
		c.Props = map[string]interface{}{}
	}
	if c.Styles == nil {
		c.Styles = map[string]interface{}{}
	}
	var zIndex *int
	if c.ZIndex != 0 {
		zIndex = &c.ZIndex
	}
	return scanComponent(r.db.QueryRow(ctx, q, uuid.NewString(), c.Type, c.X, c.Y,
		c.Width, c.Height, c.Props, c.Styles, zIndex, sectionID))
}

func (r *Repo) ListBySection(ctx context.Context, sectionID string) ([]Component, error) {
	const q = `
select ` + componentColumns + `
from components
where section_id = $1
order by z_index asc, created_at asc;
`
	rows, err := r.db.Query(ctx, q, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Component, 0, 16)
	for rows.Next() {
		var cp Component
		if err := rows.Scan(&cp.ID, &cp.Type, &cp.X, &cp.Y, &cp.Width, &cp.Height,
			&cp.Props, &cp.Styles, &cp.ZIndex, &cp.SectionID, &cp.CreatedAt, &cp.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Component, error) {
	const q = `select ` + componentColumns + ` from components where id = $1;`
	return scanComponent(r.db.QueryRow(ctx, q, id))
}

// OwnerOf resolves the owning user of a component through section, page and
// project.
func (r *Repo) OwnerOf(ctx context.Context, componentID string) (string, error) {
	const q = `
select p.user_id
from components c
join sections s on s.id = c.section_id
join pages pg on pg.id = s.page_id
join projects p on p.id = pg.project_id
where c.id = $1 and p.deleted_at is null;
`
	var userID string
	if err := r.db.QueryRow(ctx, q, componentID).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

type UpdateFields struct {
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	ZIndex *int
	Props  map[string]interface{}
	Styles map[string]interface{}
}

func (r *Repo) Update(ctx context.Context, id string, f UpdateFields) (*Component, error) {
	const q = `
update components
set x = coalesce($2, x),
    y = coalesce($3, y),
    width = coalesce($4, width),
    height = coalesce($5, height),
    z_index = coalesce($6, z_index),
    props = coalesce($7, props),
    styles = coalesce($8, styles),
    updated_at = now()
where id = $1
returning ` + componentColumns + `;
`
	var propsArg, stylesArg interface{}
	if f.Props != nil {
		propsArg = f.Props
	}
	if f.Styles != nil {
		stylesArg = f.Styles
	}
	return scanComponent(r.db.QueryRow(ctx, q, id, f.X, f.Y, f.Width, f.Height, f.ZIndex, propsArg, stylesArg))
}

type BatchItem struct {
	ID     string
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	ZIndex *int
}

// BatchUpdate applies geometry updates to many components atomically. Every
// id must belong to the given user; otherwise nothing is written.
func (r *Repo) BatchUpdate(ctx context.Context, userID string, items []BatchItem) ([]Component, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	const check = `
select count(*)
from components c
join sections s on s.id = c.section_id
join pages pg on pg.id = s.page_id
join projects p on p.id = pg.project_id
where c.id = any($1) and p.user_id = $2 and p.deleted_at is null;
`
	var count int
	if err := tx.QueryRow(ctx, check, ids, userID).Scan(&count); err != nil {
		return nil, err
	}
	if count != len(items) {
		return nil, ErrNotFound
	}

	const set = `
update components
set x = coalesce($2, x),
    y = coalesce($3, y),
    width = coalesce($4, width),
    height = coalesce($5, height),
    z_index = coalesce($6, z_index),
    updated_at = now()
where id = $1
returning ` + componentColumns + `;
`
	out := make([]Component, 0, len(items))
	for _, item := range items {
		cp, err := scanComponent(tx.QueryRow(ctx, set, item.ID, item.X, item.Y, item.Width, item.Height, item.ZIndex))
		if err != nil {
			return nil, err
		}
		out = append(out, *cp)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from components where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

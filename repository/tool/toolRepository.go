package toolrepo

import (
	"context"
	"errors"

	"borrowbox/model"
	"borrowbox/util/database"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = errors.New("tool not found")
	ErrBorrowed = errors.New("tool currently borrowed")
)

type Repo interface {
	Create(ctx context.Context, t *model.Tool) error
	List(ctx context.Context, search string, category string) ([]model.Tool, error)
	ByID(ctx context.Context, id int64) (*model.Tool, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Tool, error)
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const toolColumns = `
	id, name, description, category, price_per_day,
	pickup_location_name, pickup_location_desc, pickup_lat, pickup_lon,
	image_url, owner_id, owner_name, available, borrowed,
	borrowed_days, total_cost, created_at`

func scanTool(row pgx.Row) (*model.Tool, error) {
	t := &model.Tool{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Category, &t.PricePerDay,
		&t.PickupLocationName, &t.PickupLocationDesc, &t.PickupLat, &t.PickupLon,
		&t.ImageURL, &t.OwnerID, &t.OwnerName, &t.Available, &t.Borrowed,
		&t.BorrowedDays, &t.TotalCost, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) Create(ctx context.Context, t *model.Tool) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO tools (
			name, description, category, price_per_day,
			pickup_location_name, pickup_location_desc, pickup_lat, pickup_lon,
			image_url, owner_id, owner_name, available, borrowed
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,TRUE,FALSE)
		RETURNING id, created_at`,
		t.Name, t.Description, t.Category, t.PricePerDay,
		t.PickupLocationName, t.PickupLocationDesc, t.PickupLat, t.PickupLon,
		t.ImageURL, t.OwnerID, t.OwnerName,
	).Scan(&t.ID, &t.CreatedAt)
}

// List returns available (not borrowed) tools, optionally narrowed by a
// case-insensitive name substring and an exact category.
func (r *repo) List(ctx context.Context, search string, category string) ([]model.Tool, error) {
	const q = `
		SELECT ` + toolColumns + `
		FROM tools
		WHERE available AND NOT borrowed
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, search, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Tool, error) {
	t, err := scanTool(r.db.Pool.QueryRow(ctx, `
		SELECT `+toolColumns+`
		FROM tools
		WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Tool, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+toolColumns+`
		FROM tools
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// DeleteOwned removes a listing. The borrowed guard is part of the statement
// so a borrow that lands concurrently cannot orphan its record.
func (r *repo) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM tools
		WHERE id = $1 AND owner_id = $2 AND NOT borrowed AND available`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBorrowed
	}
	return nil
}

package reviewrepo

import (
	"context"
	"errors"

	"borrowbox/model"
	"borrowbox/util/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate means a review already exists for the borrow record. The
// reviews_borrow_key constraint is what enforces at-most-one.
var ErrDuplicate = errors.New("review already exists for borrow")

type Repo interface {
	Create(ctx context.Context, rv *model.Review) error
	ListByTool(ctx context.Context, toolID int64) ([]model.Review, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rv *model.Review) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews (
			borrow_id, tool_id, tool_name, lender_id, borrower_id,
			tool_rating, lender_rating, comment
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at`,
		rv.BorrowID, rv.ToolID, rv.ToolName, rv.LenderID, rv.BorrowerID,
		rv.ToolRating, rv.LenderRating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *repo) ListByTool(ctx context.Context, toolID int64) ([]model.Review, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, borrow_id, tool_id, tool_name, lender_id, borrower_id,
			tool_rating, lender_rating, comment, created_at
		FROM reviews
		WHERE tool_id = $1
		ORDER BY created_at DESC, id DESC`, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(
			&rv.ID, &rv.BorrowID, &rv.ToolID, &rv.ToolName, &rv.LenderID, &rv.BorrowerID,
			&rv.ToolRating, &rv.LenderRating, &rv.Comment, &rv.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Package borrowrepo is the storage side of the borrow lifecycle. It owns
// every write that moves a tool or a borrow record between states, so the
// service can run the paired tool/record updates inside one transaction.
package borrowrepo

import (
	"context"
	"errors"

	"borrowbox/model"
	"borrowbox/util/database"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotAvailable = errors.New("tool not available")
	ErrNotFound     = errors.New("borrow record not found")
)

type Repo interface {
	// WithTx runs fn in a single transaction; nested calls join it.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Tool side of the lifecycle.
	ReserveTool(ctx context.Context, toolID int64) error
	ReleaseTool(ctx context.Context, toolID int64) error
	MarkToolBorrowed(ctx context.Context, toolID int64, days int, total float64) error
	FreeTool(ctx context.Context, toolID int64) error

	// Record side.
	Insert(ctx context.Context, b *model.BorrowRecord) error
	ByID(ctx context.Context, id int64) (*model.BorrowRecord, error)
	ForUpdate(ctx context.Context, id int64) (*model.BorrowRecord, error)
	ByOrderID(ctx context.Context, orderID string) (*model.BorrowRecord, error)
	MarkPaid(ctx context.Context, id int64, paymentID string) error
	MarkReturned(ctx context.Context, id int64) error
	MarkCanceled(ctx context.Context, id int64) error

	ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BorrowRecord, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) q(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.Pool
}

func (r *repo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db.Pool, fn)
}

// ReserveTool flips available off, but only when the tool is still listed
// and not borrowed. Zero rows means somebody else got there first.
func (r *repo) ReserveTool(ctx context.Context, toolID int64) error {
	tag, err := r.q(ctx).Exec(ctx, `
		UPDATE tools
		SET available = FALSE
		WHERE id = $1 AND available AND NOT borrowed`, toolID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotAvailable
	}
	return nil
}

func (r *repo) ReleaseTool(ctx context.Context, toolID int64) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE tools
		SET available = TRUE
		WHERE id = $1 AND NOT borrowed`, toolID)
	return err
}

func (r *repo) MarkToolBorrowed(ctx context.Context, toolID int64, days int, total float64) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE tools
		SET borrowed = TRUE,
			available = FALSE,
			borrowed_days = $2,
			total_cost = $3
		WHERE id = $1`, toolID, days, total)
	return err
}

func (r *repo) FreeTool(ctx context.Context, toolID int64) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE tools
		SET borrowed = FALSE,
			available = TRUE,
			borrowed_days = NULL,
			total_cost = NULL
		WHERE id = $1`, toolID)
	return err
}

func (r *repo) Insert(ctx context.Context, b *model.BorrowRecord) error {
	return r.q(ctx).QueryRow(ctx, `
		INSERT INTO borrow_records (
			borrower_id, borrower_name, tool_id, tool_name,
			days, total_cost, status, payment_order_id, return_token
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at`,
		b.BorrowerID, b.BorrowerName, b.ToolID, b.ToolName,
		b.Days, b.TotalCost, b.Status, b.PaymentOrderID, b.ReturnToken,
	).Scan(&b.ID, &b.CreatedAt)
}

const borrowColumns = `
	id, borrower_id, borrower_name, tool_id, tool_name,
	days, total_cost, status, payment_order_id, payment_id, return_token,
	created_at, paid_at, returned_at, canceled_at`

func scanBorrow(row pgx.Row) (*model.BorrowRecord, error) {
	b := &model.BorrowRecord{}
	err := row.Scan(
		&b.ID, &b.BorrowerID, &b.BorrowerName, &b.ToolID, &b.ToolName,
		&b.Days, &b.TotalCost, &b.Status, &b.PaymentOrderID, &b.PaymentID, &b.ReturnToken,
		&b.CreatedAt, &b.PaidAt, &b.ReturnedAt, &b.CanceledAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.BorrowRecord, error) {
	b, err := scanBorrow(r.q(ctx).QueryRow(ctx, `
		SELECT `+borrowColumns+`
		FROM borrow_records
		WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *repo) ForUpdate(ctx context.Context, id int64) (*model.BorrowRecord, error) {
	b, err := scanBorrow(r.q(ctx).QueryRow(ctx, `
		SELECT `+borrowColumns+`
		FROM borrow_records
		WHERE id = $1
		FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *repo) ByOrderID(ctx context.Context, orderID string) (*model.BorrowRecord, error) {
	b, err := scanBorrow(r.q(ctx).QueryRow(ctx, `
		SELECT `+borrowColumns+`
		FROM borrow_records
		WHERE payment_order_id = $1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// MarkPaid transitions PENDING_PAYMENT to ACTIVE. The status predicate keeps
// a replayed webhook from rewriting an already-settled record.
func (r *repo) MarkPaid(ctx context.Context, id int64, paymentID string) error {
	tag, err := r.q(ctx).Exec(ctx, `
		UPDATE borrow_records
		SET status = 'ACTIVE',
			payment_id = $2,
			paid_at = NOW()
		WHERE id = $1 AND status = 'PENDING_PAYMENT'`, id, paymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) MarkReturned(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `
		UPDATE borrow_records
		SET status = 'RETURNED',
			returned_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) MarkCanceled(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `
		UPDATE borrow_records
		SET status = 'CANCELED',
			canceled_at = NOW()
		WHERE id = $1 AND status = 'PENDING_PAYMENT'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BorrowRecord, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+borrowColumns+`
		FROM borrow_records
		WHERE borrower_id = $1
		ORDER BY created_at DESC, id DESC`, borrowerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BorrowRecord
	for rows.Next() {
		b, err := scanBorrow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

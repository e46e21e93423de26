package reviewsvc

import (
	"context"
	"errors"

	"borrowbox/model"
	reviewrepo "borrowbox/repository/review"
)

var (
	ErrBorrowNotFound  = errors.New("borrow record not found")
	ErrNotBorrower     = errors.New("not the borrower")
	ErrNotReturned     = errors.New("tool not returned yet")
	ErrToolGone        = errors.New("tool no longer listed")
	ErrAlreadyReviewed = errors.New("borrow already reviewed")
)

type BorrowReader interface {
	ByID(ctx context.Context, id int64) (*model.BorrowRecord, error)
}

type ToolReader interface {
	ByID(ctx context.Context, id int64) (*model.Tool, error)
}

type Service interface {
	Create(ctx context.Context, sess model.Session, req model.CreateReviewReq) (*model.Review, error)
	ListByTool(ctx context.Context, toolID int64) ([]model.Review, error)
}

type service struct {
	r       reviewrepo.Repo
	borrows BorrowReader
	tools   ToolReader
}

func New(r reviewrepo.Repo, borrows BorrowReader, tools ToolReader) Service {
	return &service{r: r, borrows: borrows, tools: tools}
}

func (s *service) Create(ctx context.Context, sess model.Session, req model.CreateReviewReq) (*model.Review, error) {
	b, err := s.borrows.ByID(ctx, req.BorrowID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBorrowNotFound
	}
	if b.BorrowerID != sess.UserID {
		return nil, ErrNotBorrower
	}
	if b.Status != model.BorrowReturned {
		return nil, ErrNotReturned
	}

	// The lender is resolved from the tool at review time, not cached from
	// the borrow.
	t, err := s.tools.ByID(ctx, b.ToolID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrToolGone
	}

	rv := &model.Review{
		BorrowID:     b.ID,
		ToolID:       b.ToolID,
		ToolName:     b.ToolName,
		LenderID:     t.OwnerID,
		BorrowerID:   sess.UserID,
		ToolRating:   req.ToolRating,
		LenderRating: req.LenderRating,
		Comment:      req.Comment,
	}
	if err := s.r.Create(ctx, rv); err != nil {
		if errors.Is(err, reviewrepo.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) ListByTool(ctx context.Context, toolID int64) ([]model.Review, error) {
	return s.r.ListByTool(ctx, toolID)
}

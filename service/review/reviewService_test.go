package reviewsvc

import (
	"context"
	"testing"

	"borrowbox/model"
	reviewrepo "borrowbox/repository/review"

	"github.com/stretchr/testify/require"
)

type fakeReviewRepo struct {
	reviews []model.Review
	nextID  int64
}

var _ reviewrepo.Repo = (*fakeReviewRepo)(nil)

func (f *fakeReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	for _, existing := range f.reviews {
		if existing.BorrowID == rv.BorrowID {
			return reviewrepo.ErrDuplicate
		}
	}
	f.nextID++
	rv.ID = f.nextID
	f.reviews = append(f.reviews, *rv)
	return nil
}

func (f *fakeReviewRepo) ListByTool(ctx context.Context, toolID int64) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range f.reviews {
		if rv.ToolID == toolID {
			out = append(out, rv)
		}
	}
	return out, nil
}

type fixedBorrows map[int64]*model.BorrowRecord

func (m fixedBorrows) ByID(ctx context.Context, id int64) (*model.BorrowRecord, error) {
	b, ok := m[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

type fixedTools map[int64]*model.Tool

func (m fixedTools) ByID(ctx context.Context, id int64) (*model.Tool, error) {
	t, ok := m[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

var sess = model.Session{UserID: 2, DisplayName: "Borrower"}

func fixture() (Service, *fakeReviewRepo) {
	repo := &fakeReviewRepo{}
	borrows := fixedBorrows{
		5: {ID: 5, BorrowerID: 2, ToolID: 10, ToolName: "Cordless Drill", Status: model.BorrowReturned},
		6: {ID: 6, BorrowerID: 2, ToolID: 10, ToolName: "Cordless Drill", Status: model.BorrowActive},
	}
	tools := fixedTools{
		10: {ID: 10, Name: "Cordless Drill", OwnerID: 1, OwnerName: "Lender"},
	}
	return New(repo, borrows, tools), repo
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	svc, repo := fixture()

	rv, err := svc.Create(ctx, sess, model.CreateReviewReq{
		BorrowID:     5,
		ToolRating:   4,
		LenderRating: 5,
		Comment:      "solid drill, friendly lender",
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), rv.ToolID)
	require.Equal(t, int64(1), rv.LenderID)
	require.Equal(t, int64(2), rv.BorrowerID)
	require.Len(t, repo.reviews, 1)
}

func TestCreateReview_OnlyOncePerBorrow(t *testing.T) {
	ctx := context.Background()
	svc, _ := fixture()

	req := model.CreateReviewReq{BorrowID: 5, ToolRating: 4, LenderRating: 5}
	_, err := svc.Create(ctx, sess, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, sess, req)
	require.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReview_RequiresReturn(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.Create(context.Background(), sess, model.CreateReviewReq{
		BorrowID: 6, ToolRating: 4, LenderRating: 5,
	})
	require.ErrorIs(t, err, ErrNotReturned)
}

func TestCreateReview_OnlyBorrower(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.Create(context.Background(), model.Session{UserID: 9}, model.CreateReviewReq{
		BorrowID: 5, ToolRating: 4, LenderRating: 5,
	})
	require.ErrorIs(t, err, ErrNotBorrower)
}

func TestCreateReview_UnknownBorrow(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.Create(context.Background(), sess, model.CreateReviewReq{
		BorrowID: 404, ToolRating: 4, LenderRating: 5,
	})
	require.ErrorIs(t, err, ErrBorrowNotFound)
}

func TestListByTool(t *testing.T) {
	ctx := context.Background()
	svc, _ := fixture()

	_, err := svc.Create(ctx, sess, model.CreateReviewReq{BorrowID: 5, ToolRating: 3, LenderRating: 4})
	require.NoError(t, err)

	got, err := svc.ListByTool(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	none, err := svc.ListByTool(ctx, 11)
	require.NoError(t, err)
	require.Empty(t, none)
}
